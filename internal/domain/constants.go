package domain

// Форматы даты и времени в API и БД
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Ставки, применяемые к стоимости бронирования
const (
	ServiceFeeRate = 0.05
	TaxRate        = 0.08
)

// Значения по умолчанию для впечатлений (совпадают с DEFAULT в схеме)
const (
	DefaultMinGuests = 1
	DefaultMaxGuests = 10
)

// Ограничения списков и пакетного создания слотов
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxBulkRangeDays = 366
)

// DeletedByUserReason причина отмены при удалении бронирования через API
const DeletedByUserReason = "Deleted by user"
