package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeLayout = "15:04"

// TimeString время суток в формате HH:MM (без даты и часового пояса)
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{timeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для незаполненного значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore сравнивает два значения времени
func (t TimeString) IsBefore(other TimeString) (bool, error) {
	a, err := t.Minutes()
	if err != nil {
		return false, err
	}
	b, err := other.Minutes()
	if err != nil {
		return false, err
	}
	return a < b, nil
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
