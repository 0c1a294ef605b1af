// Package update реализует HTTP-обработчик обновления заказа.
//
// Обновление — полная замена изменяемых полей; владелец заказа не меняется.
// Запрос проходит те же бизнес-правила, что и создание заказа.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pickup-order/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pickup-order/internal/http/response"
	"github.com/magabrotheeeer/pickup-order/internal/lib/sl"
	"github.com/magabrotheeeer/pickup-order/internal/models"
	orderservice "github.com/magabrotheeeer/pickup-order/internal/services/order"
	"github.com/magabrotheeeer/pickup-order/internal/validation"
)

// Handler управляет HTTP-запросами на обновление заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления заказа.
type Service interface {
	Update(ctx context.Context, req models.DummyOrder, id int, userUID string) (*models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить заказ
// @Description Полностью заменяет изменяемые поля заказа текущего пользователя.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body models.DummyOrder true "Новые данные заказа"
// @Success 200 {object} map[string]any "Обновлённый заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /orders/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.update"
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

	var req models.DummyOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if vErr := validation.ValidateOrder(req, time.Now()); vErr != nil {
		log.Error("validation failed", sl.Err(vErr))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(vErr.Msg))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	order, err := h.service.Update(r.Context(), req, id, userUID)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			log.Error("order not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Order not found"))
			return
		}
		log.Error("failed to update order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update order"))
		return
	}

	log.Info("success to update order", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(order))
}
