// Package create реализует HTTP-обработчик для создания новых заказов пользователя.
//
// Handler принимает JSON-запрос с данными заказа, проверяет его по бизнес-правилам,
// извлекает идентификатор пользователя из контекста, вызывает бизнес-логику
// создания заказа через сервис и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pickup-order/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pickup-order/internal/http/response"
	"github.com/magabrotheeeer/pickup-order/internal/lib/sl"
	"github.com/magabrotheeeer/pickup-order/internal/models"
	"github.com/magabrotheeeer/pickup-order/internal/validation"
)

// Handler управляет HTTP-запросами на создание новых заказов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для создания заказов
}

// Service описывает интерфейс бизнес-логики создания заказа.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyOrder) (*models.Order, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать новый заказ
// @Description Создает новый заказ для текущего пользователя. Возвращает созданную запись.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyOrder true "Данные нового заказа"
// @Success 201 {object} map[string]any "Успешное создание заказа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании заказа"
// @Router /orders [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	order, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create order"))
		return
	}

	log.Info("success to create order", slog.Int("id", order.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(order))
}
