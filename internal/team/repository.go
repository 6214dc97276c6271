package team

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
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context, filter Filter) ([]*Team, int, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, teamID, staffID string) error
	RemoveMember(ctx context.Context, teamID, staffID string) error
	ListMembers(ctx context.Context, teamID string) ([]Member, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, t *Team) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.teams").
		Columns("name", "description").
		Values(t.Name, t.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create team query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create team failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Team, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "description", "created_at", "updated_at",
	).
		From("public.teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get team query failed: %w", err)
	}

	var t Team
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get team failed: %w", err)
	}

	members, err := r.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Members = members

	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Team, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "name", "description", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.teams")

	if filter.Search != "" {
		queryBuilder = queryBuilder.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}

	orderBy := "name"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	queryBuilder = queryBuilder.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list teams query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams failed: %w", err)
	}
	defer rows.Close()

	var result []*Team
	var total int

	for rows.Next() {
		var t Team
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan team failed: %w", err)
		}
		result = append(result, &t)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Team) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.teams").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update team query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete team query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete team failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddMember(ctx context.Context, teamID, staffID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.team_members").
		Columns("team_id", "staff_id").
		Values(teamID, staffID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add team member query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Duplicate membership
			if pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyMember
			}
			// Unknown team or staff id
			if pgErr.Code == pgerrcode.ForeignKeyViolation {
				return ErrStaffNotFound
			}
		}
		return fmt.Errorf("add team member failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveMember(ctx context.Context, teamID, staffID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.team_members").
		Where(squirrel.Eq{"team_id": teamID, "staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove team member query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove team member failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotMember
	}
	return nil
}

func (r *pgxRepository) ListMembers(ctx context.Context, teamID string) ([]Member, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("tm.staff_id", "s.name", "tm.added_at").
		From("public.team_members tm").
		Join("public.staff s ON tm.staff_id = s.id").
		Where(squirrel.Eq{"tm.team_id": teamID}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list team members query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list team members failed: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.StaffID, &m.StaffName, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("scan team member failed: %w", err)
		}
		members = append(members, m)
	}

	return members, nil
}
