package stats

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("stats.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("stats.cache: failed to write")

	// ErrDecode возвращается, когда закэшированное значение не удалось разобрать
	ErrDecode = errors.New("stats.cache: failed to decode")
)
