// Package models содержит доменные структуры заказа,
// а также вспомогательные типы для работы с данными из JSON-запросов.
package models

import "time"

// Способы получения заказа. Перечисление управляет тем, какие
// остальные поля заказа обязательны.
const (
	DeliveryTypeInStore  = "IN_STORE"
	DeliveryTypeDelivery = "DELIVERY"
	DeliveryTypeCurbside = "CURBSIDE"
)

// DeliveryTypes список допустимых способов получения.
var DeliveryTypes = []string{DeliveryTypeInStore, DeliveryTypeDelivery, DeliveryTypeCurbside}

// Order основная модель заказа, используемая в бизнес-логике и хранилище.
// Владелец заказа неизменяем после создания: все чтения и изменения
// выполняются в разрезе (id, user_uid).
type Order struct {
	ID             int        `json:"id"`
	UserUID        string     `json:"userId"`
	DeliveryType   string     `json:"deliveryType"`
	Phone          string     `json:"phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	PickupDatetime *time.Time `json:"pickupDatetime,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// DummyOrder используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Order. Дата самовывоза приходит строкой,
// чтобы её можно было провалидировать и распарсить вручную.
// Строковые поля сохраняются ровно в том виде, в каком пришли.
type DummyOrder struct {
	DeliveryType   string `json:"deliveryType"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	PickupDatetime string `json:"pickupDatetime,omitempty"`
	Notes          string `json:"notes,omitempty"`
}
