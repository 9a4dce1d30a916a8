package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/Suleiman-Moraes/device-api/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const devicesTable = "devices"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type (
	// PoolOps defines the interface for database operations.
	// This allows injecting mock implementations for testing.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// DevicesRepository handles device persistence operations.
	DevicesRepository struct {
		pool       PoolOps
		scanner    Scanner
		logger     logger.Logger
		translator *CriteriaTranslator
	}

	deviceRow struct {
		ID        string    `db:"id"`
		Name      string    `db:"name"`
		Brand     string    `db:"brand"`
		State     string    `db:"state"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
)

// NewDevicesRepository creates a new DevicesRepository with the given dependencies.
func NewDevicesRepository(
	pool PoolOps,
	scanner Scanner,
	translator *CriteriaTranslator,
	log logger.Logger,
) *DevicesRepository {
	return &DevicesRepository{
		pool:       pool,
		scanner:    scanner,
		translator: translator,
		logger:     log,
	}
}

func (r *DevicesRepository) Create(ctx context.Context, device *model.Device) error {
	query, args, err := psql.Insert(devicesTable).
		Columns("id", "name", "brand", "state", "created_at", "updated_at").
		Values(
			device.ID.String(),
			device.Name,
			device.Brand,
			device.State.String(),
			device.CreatedAt,
			device.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return model.ErrDuplicateDevice
		}

		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return nil
}

func (r *DevicesRepository) GetByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	query, args, err := psql.Select("id", "name", "brand", "state", "created_at", "updated_at").
		From(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row deviceRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, model.ErrDeviceNotFound
		}

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return r.convertRowToDevice(row)
}

// FindByFilter runs the filtered page query. Failures never propagate:
// the caller gets an empty page and the cause lands in the log. Totals
// come from a separate count query sharing the same conditions, issued
// only when the request is paginated.
func (r *DevicesRepository) FindByFilter(ctx context.Context, filter model.DeviceFilter) *model.DevicePage {
	filter.Normalize()

	criteria := model.FromDeviceFilter(filter)

	selectBuilder := psql.Select("id", "name", "brand", "state", "created_at", "updated_at").
		From(devicesTable)

	selectBuilder = r.translator.ApplyToSelect(selectBuilder, criteria)

	devices, err := r.queryDevices(ctx, selectBuilder)
	if err != nil {
		r.logger.Warn().Err(err).Msg("device listing failed, returning empty page")

		return model.EmptyDevicePage(filter)
	}

	totalItems := uint(len(devices))

	if criteria.IsPaginated() {
		totalItems, err = r.Count(ctx, filter)
		if err != nil {
			r.logger.Warn().Err(err).Msg("device count failed, returning empty page")

			return model.EmptyDevicePage(filter)
		}
	}

	return &model.DevicePage{
		Items:      devices,
		Pagination: r.buildPagination(devices, criteria, filter, totalItems),
		Filters:    filter,
	}
}

// Count returns the number of devices matching the filter's conditions,
// ignoring its pagination settings.
func (r *DevicesRepository) Count(ctx context.Context, filter model.DeviceFilter) (uint, error) {
	criteria := model.FromDeviceFilter(filter)

	builder := psql.Select("COUNT(*)").From(devicesTable)
	builder = r.translator.ApplyConditionsOnly(builder, criteria)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total uint
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return total, nil
}

func (r *DevicesRepository) Update(ctx context.Context, device *model.Device) error {
	query, args, err := psql.Update(devicesTable).
		Set("name", device.Name).
		Set("brand", device.Brand).
		Set("state", device.State.String()).
		Set("updated_at", device.UpdatedAt).
		Where(sq.Eq{"id": device.ID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return model.ErrDuplicateDevice
		}

		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrDeviceNotFound
	}

	return nil
}

func (r *DevicesRepository) Delete(ctx context.Context, id model.DeviceID) error {
	query, args, err := psql.Delete(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrDeviceNotFound
	}

	return nil
}

func (r *DevicesRepository) Exists(ctx context.Context, id model.DeviceID) (bool, error) {
	query, args, err := psql.Select("1").
		From(devicesTable).
		Where(sq.Eq{"id": id.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return true, nil
}

func (r *DevicesRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *DevicesRepository) buildPagination(
	devices []*model.Device,
	criteria model.Criteria,
	filter model.DeviceFilter,
	totalItems uint,
) model.Pagination {
	pagination := model.Pagination{
		Page:       criteria.Page(),
		Size:       criteria.Size(),
		TotalItems: totalItems,
	}

	if totalItems > 0 {
		pagination.TotalPages = (totalItems + criteria.Size() - 1) / criteria.Size()
	}

	if criteria.IsPaginated() {
		pagination.HasNext = criteria.Page()+1 < pagination.TotalPages
		pagination.HasPrevious = criteria.Page() > 0
	}

	return r.generateCursors(devices, pagination, filter.SortProperty)
}

func (r *DevicesRepository) generateCursors(
	devices []*model.Device,
	pagination model.Pagination,
	sortProperty string,
) model.Pagination {
	if len(devices) == 0 {
		return pagination
	}

	if pagination.HasNext {
		cursor := model.NewCursorFromDevice(devices[len(devices)-1], sortProperty, model.CursorDirectionNext)
		if encoded, err := model.EncodeCursor(cursor); err == nil {
			pagination.NextCursor = encoded
		}
	}

	if pagination.HasPrevious {
		cursor := model.NewCursorFromDevice(devices[0], sortProperty, model.CursorDirectionPrev)
		if encoded, err := model.EncodeCursor(cursor); err == nil {
			pagination.PreviousCursor = encoded
		}
	}

	return pagination
}

func (r *DevicesRepository) queryDevices(ctx context.Context, builder sq.SelectBuilder) ([]*model.Device, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var deviceRows []deviceRow
	if err := r.scanner.ScanAll(&deviceRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	devices := make([]*model.Device, 0, len(deviceRows))
	for index := range deviceRows {
		device, err := r.convertRowToDevice(deviceRows[index])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
		}
		devices = append(devices, device)
	}

	return devices, nil
}

func (r *DevicesRepository) convertRowToDevice(row deviceRow) (*model.Device, error) {
	id, err := model.ParseDeviceID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device ID: %w", err)
	}

	state, err := model.ParseState(row.State)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device state: %w", err)
	}

	return &model.Device{
		ID:        id,
		Name:      row.Name,
		Brand:     row.Brand,
		State:     state,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
