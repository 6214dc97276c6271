package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error

	// CreateGroup inserts all bookings of a recurring series in one
	// transaction; either every occurrence is written or none are.
	CreateGroup(ctx context.Context, bookings []*Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListGroup(ctx context.Context, groupID string) ([]*Booking, error)

	// ListForAssignee returns the non-terminal bookings for the staff member
	// or team on the given date, excluding excludeID if non-empty, ordered by
	// start time. This is the read half of conflict detection.
	ListForAssignee(ctx context.Context, staffID, teamID *string, date time.Time, excludeID string) ([]*Booking, error)

	Update(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdatePayment(ctx context.Context, id string, status PaymentStatus, method string, paidAt *time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// The bookings table carries btree_gist exclusion constraints on
// (staff_id, booking_date, time range) and (team_id, booking_date, time
// range) for non-terminal statuses. The application-level conflict check is
// advisory UI; the constraint is what actually serializes two near
// simultaneous writes for the same slot.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return ErrTimeConflict
		case pgerrcode.ForeignKeyViolation:
			switch pgErr.ConstraintName {
			case "bookings_customer_id_fkey":
				return ErrCustomerNotFound
			case "bookings_service_id_fkey":
				return ErrServiceNotFound
			case "bookings_staff_id_fkey":
				return ErrStaffNotFound
			case "bookings_team_id_fkey":
				return ErrTeamNotFound
			}
		}
	}
	return nil
}

const dateFormat = "2006-01-02"

func selectColumns() []string {
	return []string{
		"b.id", "b.customer_id", "c.name", "b.service_id", "s.name",
		"b.staff_id", "st.name", "b.team_id", "tm.name",
		"b.booking_date", "b.start_time::text", "b.end_time::text",
		"b.status", "b.pricing_mode", "b.price_cents",
		"b.payment_status", "b.payment_method", "b.paid_at", "b.notes",
		"b.recurring_group_id", "b.recurring_sequence", "b.recurring_total", "b.recurring_pattern",
		"b.created_at", "b.updated_at",
	}
}

func joinedFrom(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
	return builder.
		From("public.bookings b").
		Join("public.customers c ON b.customer_id = c.id").
		Join("public.services s ON b.service_id = s.id").
		LeftJoin("public.staff st ON b.staff_id = st.id").
		LeftJoin("public.teams tm ON b.team_id = tm.id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, extra ...any) (*Booking, error) {
	var b Booking
	var startStr, endStr string

	dest := []any{
		&b.ID, &b.CustomerID, &b.CustomerName, &b.ServiceID, &b.ServiceName,
		&b.StaffID, &b.StaffName, &b.TeamID, &b.TeamName,
		&b.Date, &startStr, &endStr,
		&b.Status, &b.PricingMode, &b.PriceCents,
		&b.PaymentStatus, &b.PaymentMethod, &b.PaidAt, &b.Notes,
		&b.RecurringGroupID, &b.RecurringSeq, &b.RecurringTotal, &b.RecurringPattern,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	start, err := ParseTimeOfDay(startStr)
	if err != nil {
		return nil, fmt.Errorf("bad start_time %q in row: %w", startStr, err)
	}
	end, err := ParseTimeOfDay(endStr)
	if err != nil {
		return nil, fmt.Errorf("bad end_time %q in row: %w", endStr, err)
	}
	b.StartTime = start
	b.EndTime = end

	return &b, nil
}

func insertValues(b *Booking) ([]string, []any) {
	columns := []string{
		"customer_id", "service_id", "staff_id", "team_id",
		"booking_date", "start_time", "end_time",
		"status", "pricing_mode", "price_cents",
		"payment_status", "payment_method", "notes",
		"recurring_group_id", "recurring_sequence", "recurring_total", "recurring_pattern",
	}
	values := []any{
		b.CustomerID, b.ServiceID, b.StaffID, b.TeamID,
		b.Date.Format(dateFormat), b.StartTime.String(), b.EndTime.String(),
		b.Status, b.PricingMode, b.PriceCents,
		b.PaymentStatus, b.PaymentMethod, b.Notes,
		b.RecurringGroupID, b.RecurringSeq, b.RecurringTotal, b.RecurringPattern,
	}
	return columns, values
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns, values := insertValues(b)
	query, args, err := psql.Insert("public.bookings").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CreateGroup(ctx context.Context, bookings []*Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin recurring group tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	for _, b := range bookings {
		columns, values := insertValues(b)
		query, args, err := psql.Insert("public.bookings").
			Columns(columns...).
			Values(values...).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build recurring insert query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).
			Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			if mapped := mapWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert recurring occurrence %d failed: %w", b.RecurringSeq, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit recurring group tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := joinedFrom(psql.Select(selectColumns()...)).
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(selectColumns(), "count(*) OVER() as total_count")
	queryBuilder := joinedFrom(psql.Select(columns...))

	if filter.CustomerID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.customer_id": filter.CustomerID})
	}
	if filter.StaffID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.staff_id": filter.StaffID})
	}
	if filter.TeamID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.team_id": filter.TeamID})
	}
	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.PaymentStatus != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.payment_status": filter.PaymentStatus})
	}
	if filter.DateFrom != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"b.booking_date": filter.DateFrom.Format(dateFormat)})
	}
	if filter.DateTo != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"b.booking_date": filter.DateTo.Format(dateFormat)})
	}

	// Sorting
	orderBy := "b.booking_date"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	queryBuilder = queryBuilder.OrderBy(orderBy+" "+orderDir, "b.start_time ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListGroup(ctx context.Context, groupID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := joinedFrom(psql.Select(selectColumns()...)).
		Where(squirrel.Eq{"b.recurring_group_id": groupID}).
		OrderBy("b.recurring_sequence ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list group query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recurring group failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	if len(bookings) == 0 {
		return nil, ErrGroupNotFound
	}
	return bookings, nil
}

func (r *pgxRepository) ListForAssignee(ctx context.Context, staffID, teamID *string, date time.Time, excludeID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := joinedFrom(psql.Select(selectColumns()...)).
		Where(squirrel.Eq{"b.booking_date": date.Format(dateFormat)}).
		Where(squirrel.NotEq{"b.status": []string{string(StatusCancelled), string(StatusNoShow)}})

	switch {
	case staffID != nil:
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.staff_id": *staffID})
	case teamID != nil:
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.team_id": *teamID})
	default:
		return nil, nil
	}

	if excludeID != "" {
		queryBuilder = queryBuilder.Where(squirrel.NotEq{"b.id": excludeID})
	}

	query, args, err := queryBuilder.OrderBy("b.start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build assignee bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignee bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignee booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("customer_id", b.CustomerID).
		Set("service_id", b.ServiceID).
		Set("staff_id", b.StaffID).
		Set("team_id", b.TeamID).
		Set("booking_date", b.Date.Format(dateFormat)).
		Set("start_time", b.StartTime.String()).
		Set("end_time", b.EndTime.String()).
		Set("status", b.Status).
		Set("pricing_mode", b.PricingMode).
		Set("price_cents", b.PriceCents).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdatePayment(ctx context.Context, id string, status PaymentStatus, method string, paidAt *time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("payment_status", status).
		Set("payment_method", method).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update payment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
