package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/pickup-order/internal/models"
)

// CreateOrder вставляет новый заказ и возвращает его ID.
func (s *Storage) CreateOrder(ctx context.Context, entry models.Order) (int, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (user_uid, delivery_type, phone, address, pickup_datetime, notes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.DeliveryType, entry.Phone, entry.Address,
		entry.PickupDatetime, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadOrder возвращает заказ по его ID в разрезе владельца.
// Заказ другого пользователя неотличим от несуществующего: в обоих
// случаях возвращается sql.ErrNoRows.
func (s *Storage) ReadOrder(ctx context.Context, id int, userUID string) (*models.Order, error) {
	const op = "storage.ReadOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, delivery_type, phone, address, pickup_datetime, notes
			  FROM orders
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Order
	var pickup sql.NullTime
	if err := row.Scan(&result.ID, &result.UserUID, &result.DeliveryType,
		&result.Phone, &result.Address, &pickup, &result.Notes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if pickup.Valid {
		result.PickupDatetime = &pickup.Time
	}
	return &result, nil
}

// UpdateOrder полностью заменяет изменяемые поля заказа в разрезе владельца
// и возвращает количество изменённых строк. Владелец заказа не меняется.
func (s *Storage) UpdateOrder(ctx context.Context, entry models.Order, id int, userUID string) (int, error) {
	const op = "storage.UpdateOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders
			  SET delivery_type = $1, phone = $2, address = $3, pickup_datetime = $4,
			      notes = $5, updated_at = now()
			  WHERE id = $6 AND user_uid = $7`
	result, err := s.DB.ExecContext(ctx, query,
		entry.DeliveryType, entry.Phone, entry.Address, entry.PickupDatetime,
		entry.Notes, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
