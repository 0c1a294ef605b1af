// Package timeutil содержит вспомогательные функции для разбора и форматирования
// времени в том виде, в каком оно приходит из веб-форм.
package timeutil

import (
	"fmt"
	"time"
)

// LayoutMinute формат времени с точностью до минуты, используемый
// в ответах подсказки времени и в полях форм.
const LayoutMinute = "2006-01-02T15:04"

// ParseFlexible разбирает время в одном из поддерживаемых форматов:
// RFC3339 либо усечённый до минут LayoutMinute (интерпретируется как UTC).
func ParseFlexible(value string) (time.Time, error) {
	const op = "timeutil.ParseFlexible"
	for _, layout := range []string{time.RFC3339, LayoutMinute} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unsupported time value %q", op, value)
}
