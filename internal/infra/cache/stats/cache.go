package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kar1timmins/DineLocal/internal/domain"
)

const (
	// Key хэш со статистикой, поле - ID хоста или allHostsField
	Key = "dinelocal:booking_stats"

	// GenerationKey счётчик сбросов кэша, растёт при каждом Invalidate
	GenerationKey = "dinelocal:booking_stats:gen"

	allHostsField = "all"
)

// setScript записывает статистику, только если с момента чтения из БД не было сброса.
// KEYS[1] хэш, KEYS[2] поколение; ARGV: поле, поколение, значение, ttl в секундах.
const setScript = `
local gen = tonumber(redis.call('GET', KEYS[2]) or '0')
if gen ~= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[3])
redis.call('EXPIRE', KEYS[1], ARGV[4], 'NX')
return 1
`

// entry закэшированная статистика
type entry struct {
	TotalBookings int64                          `json:"totalBookings"`
	StatusCounts  map[domain.BookingStatus]int64 `json:"statusCounts"`
	TotalRevenue  float64                        `json:"totalRevenue"`
}

// Cache кэш статистики бронирований в Redis.
// Вся статистика лежит в одном хэше, поэтому любое изменение бронирований сбрасывает её одним DEL.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш статистики с заданным TTL
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает статистику из кэша, found=false при промахе
func (c *Cache) Get(ctx context.Context, hostID *string) (*domain.BookingStats, bool, error) {
	raw, err := c.client.HGet(ctx, Key, field(hostID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - hget: %v", ErrCacheRead, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}

	return &domain.BookingStats{
		TotalBookings: e.TotalBookings,
		StatusCounts:  e.StatusCounts,
		TotalRevenue:  e.TotalRevenue,
	}, true, nil
}

// Generation возвращает текущее поколение кэша.
// Его нужно прочитать до запроса статистики из БД и передать в Set.
func (c *Cache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Generation - get: %v", ErrCacheRead, err)
	}
	return gen, nil
}

// Set сохраняет статистику, прочитанную в поколении generation.
// Если после чтения кэш сбрасывался, запись пропускается и stored=false.
// TTL выставляется только новому хэшу, чтобы запись не жила дольше ttl после первого заполнения.
func (c *Cache) Set(ctx context.Context, hostID *string, generation int64, stats *domain.BookingStats) (bool, error) {
	raw, err := json.Marshal(entry{
		TotalBookings: stats.TotalBookings,
		StatusCounts:  stats.StatusCounts,
		TotalRevenue:  stats.TotalRevenue,
	})
	if err != nil {
		return false, fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	stored, err := c.client.Eval(ctx, setScript, []string{Key, GenerationKey},
		field(hostID), generation, string(raw), int64(c.ttl/time.Second)).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: Set - eval: %v", ErrCacheWrite, err)
	}

	return stored == 1, nil
}

// Invalidate удаляет всю закэшированную статистику.
// Поколение увеличивается до удаления, поэтому Set с данными, прочитанными раньше, уже не пройдёт.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - incr: %v", ErrCacheWrite, err)
	}
	if err := c.client.Del(ctx, Key).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - del: %v", ErrCacheWrite, err)
	}
	return nil
}

// NoopCache используется, когда Redis выключен: всегда промах
type NoopCache struct{}

// Get всегда возвращает промах
func (NoopCache) Get(context.Context, *string) (*domain.BookingStats, bool, error) {
	return nil, false, nil
}

// Generation всегда 0
func (NoopCache) Generation(context.Context) (int64, error) { return 0, nil }

// Set ничего не сохраняет
func (NoopCache) Set(context.Context, *string, int64, *domain.BookingStats) (bool, error) {
	return false, nil
}

// Invalidate ничего не делает
func (NoopCache) Invalidate(context.Context) error { return nil }

func field(hostID *string) string {
	if hostID == nil {
		return allHostsField
	}
	return *hostID
}
