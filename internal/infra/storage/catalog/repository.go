package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/psqlbuilder"
)

const tableName = "services"

// Коды ошибок PostgreSQL
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var columns = []string{
	"id",
	"business_id",
	"name",
	"duration_minutes",
	"price",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs получает услуги бизнеса по списку ID
// Услуги других бизнесов не возвращаются. Отсутствующие ID просто пропускаются,
// сравнение с запрошенным списком делает вызывающий код
func (r *Repository) GetByIDs(ctx context.Context, businessID int64, ids []int64) ([]*domain.ServiceSpec, error) {
	if len(ids) == 0 {
		return []*domain.ServiceSpec{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// ListByBusiness получает весь каталог услуг бизнеса
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64) ([]*domain.ServiceSpec, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusiness - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceSpec, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// Create добавляет услугу в каталог бизнеса и заполняет ID
func (r *Repository) Create(ctx context.Context, service *domain.ServiceSpec) (*domain.ServiceSpec, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"name",
			"duration_minutes",
			"price",
		).
		Values(
			service.BusinessID,
			service.Name,
			service.DurationMinutes,
			service.Price,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return service, nil
}

// UpdatePrice меняет цену услуги
// Уже подтвержденные бронирования хранят свою цену и не меняются
func (r *Repository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*domain.ServiceSpec, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("price", price).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePrice - build update query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, mapWriteError("UpdatePrice", err)
	}

	return service, nil
}

// Delete удаляет услугу из каталога
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeCheckViolation:
			return fmt.Errorf("%w: %s - %s", ErrServiceConstraint, op, pqErr.Constraint)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s - %s", ErrBusinessNotFound, op, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
}

func scanService(row *sql.Row) (*domain.ServiceSpec, error) {
	var service domain.ServiceSpec
	err := row.Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func scanServices(rows *sql.Rows) ([]*domain.ServiceSpec, error) {
	services := make([]*domain.ServiceSpec, 0)
	for rows.Next() {
		var service domain.ServiceSpec
		err := rows.Scan(
			&service.ID,
			&service.BusinessID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan service: %v", ErrScanRow, err)
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return services, nil
}
