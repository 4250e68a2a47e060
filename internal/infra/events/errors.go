package events

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к RabbitMQ
	ErrConnect = errors.New("events: failed to connect")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events: failed to encode payload")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: failed to publish")
)
