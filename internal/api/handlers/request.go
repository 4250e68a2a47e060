package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

// ErrEmptyBody возвращается DecodeJSON, когда тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// DecodeOptionalJSON как DecodeJSON, но пустое тело допустимо
func DecodeOptionalJSON(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil && !errors.Is(err, ErrEmptyBody) {
		return err
	}
	return nil
}

// Validate проверяет теги validate структуры запроса
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Param() != "" {
				return fmt.Errorf("field %s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
			}
			return fmt.Errorf("field %s failed %s", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

// ParseUUID проверяет, что параметр пути является UUID
func ParseUUID(value string) (string, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	return time.Parse(domain.DateFormat, value)
}

// ParseOptionalDate возвращает nil для пустой строки
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// ParseOptionalInt возвращает def для пустой строки
func ParseOptionalInt(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	return strconv.Atoi(value)
}

// OptionalString возвращает nil для пустой строки
func OptionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// OptionalUUID возвращает nil для пустой строки и ошибку для не-UUID
func OptionalUUID(value string) (*string, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseUUID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
