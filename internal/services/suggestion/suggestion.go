// Package services реализует подбор времени получения заказа.
//
// Основной алгоритм детерминированный: к опорному времени добавляется
// смещение по способу получения, минуты округляются до ближайших 15.
// Опционально перед ним опрашивается внешний AI-провайдер; любая его
// ошибка прозрачно деградирует к детерминированному алгоритму, клиент
// никогда не получает ошибку от этой функции.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/pickup-order/internal/lib/sl"
	"github.com/magabrotheeeer/pickup-order/internal/lib/timeutil"
	"github.com/magabrotheeeer/pickup-order/internal/models"
)

// Provider описывает внешний источник подсказки времени.
type Provider interface {
	SuggestTime(ctx context.Context, deliveryType string, reference time.Time) (string, error)
}

// Result итог подбора времени: подсказка и признак того,
// что её сформировал внешний AI-провайдер.
type Result struct {
	SuggestedTime string
	AIPowered     bool
}

// SuggestionService подбирает время получения заказа.
type SuggestionService struct {
	provider Provider // nil, если AI-провайдер выключен
	log      *slog.Logger
}

// NewSuggestionService создает новый экземпляр SuggestionService.
func NewSuggestionService(log *slog.Logger, provider Provider) *SuggestionService {
	return &SuggestionService{
		provider: provider,
		log:      log,
	}
}

// Suggest возвращает подсказку времени получения заказа.
// Нераспознанное currentTime приравнивается к отсутствующему.
func (s *SuggestionService) Suggest(ctx context.Context, deliveryType, currentTime string) Result {
	reference := time.Now().UTC()
	if currentTime != "" {
		if t, err := timeutil.ParseFlexible(currentTime); err == nil {
			reference = t.UTC()
		}
	}

	if s.provider != nil {
		suggested, err := s.provider.SuggestTime(ctx, deliveryType, reference)
		if err == nil {
			return Result{SuggestedTime: suggested, AIPowered: true}
		}
		s.log.Warn("ai suggestion failed, falling back to rule-based", sl.Err(err))
	}

	return Result{SuggestedTime: RuleBasedSuggestion(deliveryType, reference), AIPowered: false}
}

// RuleBasedSuggestion вычисляет время получения по правилам.
//
// Смещение от опорного времени: IN_STORE +30 минут, DELIVERY +60,
// CURBSIDE +40; любое нераспознанное значение трактуется как IN_STORE —
// это штатное поведение, а не ошибка. Минуты округляются до ближайшей
// границы 15 минут, секунды обнуляются. Если после округления время
// не строго в будущем относительно опорного, берётся начало следующего часа.
func RuleBasedSuggestion(deliveryType string, reference time.Time) string {
	reference = reference.UTC()
	suggested := reference

	switch deliveryType {
	case models.DeliveryTypeInStore:
		suggested = suggested.Add(30 * time.Minute)
	case models.DeliveryTypeDelivery:
		suggested = suggested.Add(60 * time.Minute)
	case models.DeliveryTypeCurbside:
		suggested = suggested.Add(40 * time.Minute)
	default:
		suggested = suggested.Add(30 * time.Minute)
	}

	// Округление минут до ближайших 15 с половиной вверх; 60 минут
	// корректно переносятся на следующий час.
	rounded := (suggested.Minute() + 7) / 15 * 15
	suggested = time.Date(suggested.Year(), suggested.Month(), suggested.Day(),
		suggested.Hour(), 0, 0, 0, time.UTC).Add(time.Duration(rounded) * time.Minute)

	if !suggested.After(reference) {
		suggested = time.Date(suggested.Year(), suggested.Month(), suggested.Day(),
			suggested.Hour(), 0, 0, 0, time.UTC).Add(time.Hour)
	}

	return suggested.Format(timeutil.LayoutMinute)
}
