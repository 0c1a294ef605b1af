// Package read реализует HTTP-обработчик чтения заказа по его идентификатору.
//
// Заказ возвращается только его владельцу; чужой заказ неотличим
// от несуществующего и отвечает 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pickup-order/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pickup-order/internal/http/response"
	"github.com/magabrotheeeer/pickup-order/internal/lib/sl"
	"github.com/magabrotheeeer/pickup-order/internal/models"
	orderservice "github.com/magabrotheeeer/pickup-order/internal/services/order"
)

// Handler управляет HTTP-запросами на чтение заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения заказа.
type Service interface {
	Read(ctx context.Context, id int, userUID string) (*models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прочитать заказ
// @Description Возвращает заказ текущего пользователя по ID.
// @Tags Orders
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} map[string]any "Заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /orders/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid order id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid order id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	order, err := h.service.Read(r.Context(), id, userUID)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			log.Error("order not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Order not found"))
			return
		}
		log.Error("failed to read order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read order"))
		return
	}

	log.Info("read order", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(order))
}
