// Package models содержит доменную модель пользователя системы.
// Пользователь создаётся сидом миграций, после этого учётная запись
// доступна только для чтения.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string `json:"id"`    // Уникальный идентификатор пользователя
	Email        string `json:"email"` // Электронная почта (уникальная)
	PasswordHash string `json:"-"`     // Хэш пароля пользователя
}
