// Package validation содержит бизнес-правила проверки заказов.
//
// Правила выполняются строго по порядку с остановкой на первой ошибке:
// от того, какое правило сработало, зависит возвращаемое сообщение.
// Пакет не выполняет нормализацию входных данных — что пришло, то и сохраняется.
package validation

import (
	"slices"
	"time"

	"github.com/magabrotheeeer/pickup-order/internal/lib/timeutil"
	"github.com/magabrotheeeer/pickup-order/internal/models"
)

// Kind классифицирует ошибку валидации.
type Kind string

// Виды ошибок валидации.
const (
	KindMissingField    Kind = "missing_field"
	KindInvalidEnum     Kind = "invalid_enum"
	KindInvalidFormat   Kind = "invalid_format"
	KindPolicyViolation Kind = "policy_violation"
	KindPastTimestamp   Kind = "past_timestamp"
)

// Error ошибка валидации с человеко-читаемым сообщением для клиента.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// ValidateOrder проверяет заказ по фиксированному набору правил.
// Возвращает nil, если все правила пройдены, либо первую сработавшую ошибку.
func ValidateOrder(req models.DummyOrder, now time.Time) *Error {
	if req.DeliveryType == "" {
		return &Error{KindMissingField, "Delivery type is required"}
	}
	if !slices.Contains(models.DeliveryTypes, req.DeliveryType) {
		return &Error{KindInvalidEnum, "Invalid delivery type"}
	}
	if (req.DeliveryType == models.DeliveryTypeDelivery || req.DeliveryType == models.DeliveryTypeCurbside) && req.Phone == "" {
		return &Error{KindMissingField, "Phone is required for this delivery type"}
	}
	if req.DeliveryType == models.DeliveryTypeDelivery && req.Address == "" {
		return &Error{KindMissingField, "Address is required for delivery"}
	}
	if req.Phone != "" && len(req.Phone) < 10 {
		return &Error{KindInvalidFormat, "Invalid phone number"}
	}
	if req.PickupDatetime != "" {
		pickup, err := timeutil.ParseFlexible(req.PickupDatetime)
		if err != nil {
			return &Error{KindInvalidFormat, "Invalid pickup time"}
		}
		if !pickup.After(now) {
			return &Error{KindPastTimestamp, "Pickup time must be in the future"}
		}
	}
	return nil
}
