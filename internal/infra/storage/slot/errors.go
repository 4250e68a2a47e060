package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyExists возвращается при нарушении уникальности (experience_id, date, start_time)
	ErrSlotAlreadyExists = errors.New("slot.repository: slot already exists")

	// ErrCapacityExceeded возвращается, когда условное резервирование не затронуло ни одной строки
	ErrCapacityExceeded = errors.New("slot.repository: capacity exceeded")

	// ErrSlotHasBookings возвращается при попытке удалить слот с зарезервированными местами
	ErrSlotHasBookings = errors.New("slot.repository: slot has bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
