package catalog

import "errors"

var (
	// ErrExperienceNotFound возвращается, когда впечатление не найдено
	ErrExperienceNotFound = errors.New("catalog.repository: experience not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
