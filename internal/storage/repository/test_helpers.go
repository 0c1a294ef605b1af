package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, email, passwordHash string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, password_hash)
		VALUES ($1, $2, $3)`,
		userUID, email, passwordHash)
	require.NoError(t, err)
}

// CreateOrder создает тестовый заказ и возвращает его ID
func (f *TestDataFactory) CreateOrder(t *testing.T, userUID, deliveryType, phone, address string,
	pickupDatetime *time.Time, notes string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO orders
		(user_uid, delivery_type, phone, address, pickup_datetime, notes)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userUID, deliveryType, phone, address, pickupDatetime, notes).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyOrderExists проверяет существование заказа в БД
func (v *TestVerification) VerifyOrderExists(t *testing.T, orderID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE id = $1", orderID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyOrderData проверяет данные заказа
func (v *TestVerification) VerifyOrderData(t *testing.T, orderID int, expectedDeliveryType,
	expectedPhone, expectedAddress string) {
	var deliveryType, phone, address string
	err := v.storage.DB.QueryRow(
		"SELECT delivery_type, phone, address FROM orders WHERE id = $1", orderID).
		Scan(&deliveryType, &phone, &address)
	require.NoError(t, err)
	require.Equal(t, expectedDeliveryType, deliveryType)
	require.Equal(t, expectedPhone, phone)
	require.Equal(t, expectedAddress, address)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS orders CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE orders (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid),
            delivery_type TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            pickup_datetime TIMESTAMPTZ,
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE INDEX idx_orders_user_uid ON orders(user_uid);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
