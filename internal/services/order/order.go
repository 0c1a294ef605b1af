// Package services содержит бизнес-логику для управления заказами и кешированием.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/pickup-order/internal/lib/timeutil"
	"github.com/magabrotheeeer/pickup-order/internal/models"
)

// ErrOrderNotFound возвращается, когда заказ не существует либо принадлежит
// другому пользователю — эти случаи для клиента неразличимы.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// CreateOrder добавляет новый заказ и возвращает его ID.
	CreateOrder(ctx context.Context, entry models.Order) (int, error)
	// ReadOrder возвращает заказ по ID в разрезе владельца.
	ReadOrder(ctx context.Context, id int, userUID string) (*models.Order, error)
	// UpdateOrder обновляет данные заказа по ID в разрезе владельца.
	UpdateOrder(ctx context.Context, entry models.Order, id int, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// OrderService реализует бизнес-логику работы с заказами, включая кеширование.
//
// Конкурентные обновления одного заказа не координируются: побеждает
// последняя запись.
type OrderService struct {
	repo  OrderRepository
	cache Cache
	log   *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, cache Cache, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новый заказ для пользователя, кеширует его и возвращает запись.
// Запрос должен быть предварительно провалидирован.
func (s *OrderService) Create(ctx context.Context, userUID string, req models.DummyOrder) (*models.Order, error) {
	entry, err := buildEntry(userUID, req)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateOrder(ctx, *entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	s.log.Info("created new order", slog.Int("id", id))

	cacheKey := orderCacheKey(id, userUID)
	if err := s.cache.Set(cacheKey, entry, time.Hour); err != nil {
		s.log.Warn("failed to cache order", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return entry, nil
}

// Read возвращает заказ по ID, используя кеш или репозиторий.
func (s *OrderService) Read(ctx context.Context, id int, userUID string) (*models.Order, error) {
	var result *models.Order
	cacheKey := orderCacheKey(id, userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadOrder(ctx, id, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update полностью заменяет изменяемые поля заказа и обновляет кеш.
func (s *OrderService) Update(ctx context.Context, req models.DummyOrder, id int, userUID string) (*models.Order, error) {
	entry, err := buildEntry(userUID, req)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	count, err := s.repo.UpdateOrder(ctx, *entry, id, userUID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrOrderNotFound
	}
	s.log.Info("updated order in storage", slog.Int("id", id))

	cacheKey := orderCacheKey(id, userUID)
	if err := s.cache.Set(cacheKey, entry, time.Hour); err != nil {
		s.log.Warn("failed to cache order", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return entry, nil
}

// buildEntry конвертирует данные запроса в модель заказа.
// Строковые поля переносятся без нормализации.
func buildEntry(userUID string, req models.DummyOrder) (*models.Order, error) {
	entry := models.Order{
		UserUID:      userUID,
		DeliveryType: req.DeliveryType,
		Phone:        req.Phone,
		Address:      req.Address,
		Notes:        req.Notes,
	}
	if req.PickupDatetime != "" {
		pickup, err := timeutil.ParseFlexible(req.PickupDatetime)
		if err != nil {
			return nil, fmt.Errorf("invalid pickup time: %w", err)
		}
		entry.PickupDatetime = &pickup
	}
	return &entry, nil
}

func orderCacheKey(id int, userUID string) string {
	return fmt.Sprintf("order:%d:%s", id, userUID)
}
