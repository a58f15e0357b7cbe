package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// ErrInvalidDateKey возвращается при некорректном формате даты
var ErrInvalidDateKey = errors.New("invalid date key format")

// DateKey календарная дата в формате "YYYY-MM-DD" в локальной зоне
type DateKey string

// NewDateKey строит ключ из календарной даты t в зоне t.Location()
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// ParseDateKey парсит и валидирует строку "YYYY-MM-DD"
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != len(dateKeyLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	if _, err := time.Parse(dateKeyLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return DateKey(s), nil
}

func (d DateKey) String() string {
	return string(d)
}

// Time возвращает полночь этой даты в зоне loc
func (d DateKey) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(d))
	}
	return t, nil
}

// UnmarshalJSON проверяет формат при декодировании
func (d *DateKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateKey(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
