package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kar1timmins/DineLocal/internal/domain"
	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
	"github.com/kar1timmins/DineLocal/pkg/psqlbuilder"
)

// Repository read-only доступ к таблицам каталога (пользователи, площадки, впечатления).
// Записи каталога ведутся другими сервисами.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UserExists проверяет существование пользователя
func (r *Repository) UserExists(ctx context.Context, userID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UserExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: UserExists - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// GetExperience получает впечатление вместе с ID хоста площадки
func (r *Repository) GetExperience(ctx context.Context, experienceID string) (*domain.Experience, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"e.id",
		"e.venue_id",
		"v.host_id",
		"e.title",
		"e.base_price",
		"e.min_guests",
		"e.max_guests",
		"e.is_active",
	).
		From("experiences e").
		Join("venues v ON v.id = e.venue_id").
		Where(squirrel.Eq{"e.id": experienceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExperience - build select query: %v", ErrBuildQuery, err)
	}

	var experience domain.Experience
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&experience.ID,
		&experience.VenueID,
		&experience.HostID,
		&experience.Title,
		&experience.BasePrice,
		&experience.MinGuests,
		&experience.MaxGuests,
		&experience.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrExperienceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExperience - scan experience: %v", ErrScanRow, err)
	}

	return &experience, nil
}
