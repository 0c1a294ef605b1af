// Package suggesttime реализует HTTP-обработчик подсказки времени получения заказа.
//
// Обработчик никогда не отвечает ошибкой из-за сбоя внешнего AI-провайдера:
// в худшем случае клиент получает детерминированную подсказку
// с признаком aiPowered=false.
package suggesttime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pickup-order/internal/http/response"
	"github.com/magabrotheeeer/pickup-order/internal/lib/sl"
	suggestionservice "github.com/magabrotheeeer/pickup-order/internal/services/suggestion"
)

// Request — структура входных данных подсказки времени.
//
// CurrentTime опционален; нераспознанное значение трактуется как отсутствующее.
type Request struct {
	DeliveryType string `json:"deliveryType"`
	CurrentTime  string `json:"currentTime,omitempty"`
}

// Handler управляет HTTP-запросами подсказки времени.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс подбора времени получения заказа.
type Service interface {
	Suggest(ctx context.Context, deliveryType, currentTime string) suggestionservice.Result
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подсказать время получения заказа
// @Description Возвращает рекомендуемое время получения по способу доставки.
// @Tags AI
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Способ получения и опорное время"
// @Success 200 {object} map[string]any "Подсказка времени"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или отсутствует способ получения"
// @Router /ai/suggest-time [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ai.suggesttime"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if req.DeliveryType == "" {
		log.Error("delivery type is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Delivery type is required"))
		return
	}

	result := h.service.Suggest(r.Context(), req.DeliveryType, req.CurrentTime)

	log.Info("suggested pickup time",
		slog.String("suggested_time", result.SuggestedTime),
		slog.Bool("ai_powered", result.AIPowered))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"suggestedTime": result.SuggestedTime,
		"aiPowered":     result.AIPowered,
	}))
}
