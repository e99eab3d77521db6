package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/psqlbuilder"
)

const (
	tableName = "businesses"

	// check_violation
	codeCheckViolation = "23514"
)

var columns = []string{
	"id",
	"slug",
	"name",
	"opens_at",
	"closes_at",
	"works_saturday",
	"works_sunday",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бизнесами и их расписанием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает бизнес по публичному адресу страницы
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	return r.getOne(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

// UpdateSchedule обновляет рабочие часы бизнеса
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, schedule domain.BusinessSchedule) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("opens_at", schedule.OpensAt).
		Set("closes_at", schedule.ClosesAt).
		Set("works_saturday", schedule.WorksSaturday).
		Set("works_sunday", schedule.WorksSunday).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	business, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeCheckViolation {
		return nil, fmt.Errorf("%w: %s", ErrScheduleConstraint, pqErr.Constraint)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	return business, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	business, err := scanBusiness(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan business: %v", ErrScanRow, op, err)
	}

	return business, nil
}

func scanBusiness(row *sql.Row) (*domain.Business, error) {
	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&business.ID,
		&business.Slug,
		&business.Name,
		&business.Schedule.OpensAt,
		&business.Schedule.ClosesAt,
		&business.Schedule.WorksSaturday,
		&business.Schedule.WorksSunday,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}

