package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	GetByBooking(ctx context.Context, bookingID string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rev *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("booking_id", "customer_id", "rating", "comment").
		Values(rev.BookingID, rev.CustomerID, rev.Rating, rev.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyReviewed
			case pgerrcode.ForeignKeyViolation:
				return ErrBookingNotFound
			}
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func selectBuilder(psql squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return psql.Select(
		"r.id", "r.booking_id", "r.customer_id", "c.name", "s.name",
		"r.rating", "r.comment", "r.created_at", "r.updated_at",
	).
		From("public.reviews r").
		Join("public.customers c ON r.customer_id = c.id").
		Join("public.bookings b ON r.booking_id = b.id").
		Join("public.services s ON b.service_id = s.id")
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := selectBuilder(psql).
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	var rev Review
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rev.ID, &rev.BookingID, &rev.CustomerID, &rev.CustomerName, &rev.ServiceName,
		&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	return &rev, nil
}

func (r *pgxRepository) GetByBooking(ctx context.Context, bookingID string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := selectBuilder(psql).
		Where(squirrel.Eq{"r.booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review by booking query failed: %w", err)
	}

	var rev Review
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rev.ID, &rev.BookingID, &rev.CustomerID, &rev.CustomerName, &rev.ServiceName,
		&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review by booking failed: %w", err)
	}
	return &rev, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := selectBuilder(psql).
		Column("count(*) OVER() as total_count")

	if filter.CustomerID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.customer_id": filter.CustomerID})
	}
	if filter.MinRating > 0 {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"r.rating": filter.MinRating})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	queryBuilder = queryBuilder.OrderBy("r.created_at " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query, args, err := queryBuilder.
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var total int

	for rows.Next() {
		var rev Review
		if err := rows.Scan(
			&rev.ID, &rev.BookingID, &rev.CustomerID, &rev.CustomerName, &rev.ServiceName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rev)
	}

	return reviews, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete review query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
