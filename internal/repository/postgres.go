package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recycling-api/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no recycling point has the requested id.
var ErrNotFound = errors.New("repository: recycling point not found")

const pointColumns = `id, name, latitude, longitude, fill_level, waste_type, last_emptied_at, created_at`

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository implements the repository interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListPoints returns the points matching the waste type and name filters, ordered by id
func (r *Repository) ListPoints(ctx context.Context, filter models.PointFilter) ([]models.RecyclingPoint, error) {
	sql, args, err := listQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	points := []models.RecyclingPoint{}
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan recycling point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return points, nil
}

// GetPoint loads a single point by id
func (r *Repository) GetPoint(ctx context.Context, id int64) (*models.RecyclingPoint, error) {
	sql := `SELECT ` + pointColumns + ` FROM recycling_points WHERE id = $1`

	p, err := scanPoint(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to get recycling point %d: %w", id, err)
	}
	return &p, nil
}

// CreatePoint inserts the point and returns the stored row
func (r *Repository) CreatePoint(ctx context.Context, point models.RecyclingPoint) (*models.RecyclingPoint, error) {
	sql := `
		INSERT INTO recycling_points (name, latitude, longitude, fill_level, waste_type, last_emptied_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + pointColumns

	p, err := scanPoint(r.db.QueryRow(ctx, sql,
		point.Name,
		point.Latitude,
		point.Longitude,
		point.FillLevel,
		point.WasteType,
		point.LastEmptiedAt,
		point.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert recycling point: %w", err)
	}
	return &p, nil
}

// UpdatePoint overwrites every mutable column of the point. created_at is never changed.
func (r *Repository) UpdatePoint(ctx context.Context, point models.RecyclingPoint) (*models.RecyclingPoint, error) {
	sql := `
		UPDATE recycling_points
		SET name = $2, latitude = $3, longitude = $4, fill_level = $5, waste_type = $6, last_emptied_at = $7
		WHERE id = $1
		RETURNING ` + pointColumns

	p, err := scanPoint(r.db.QueryRow(ctx, sql,
		point.ID,
		point.Name,
		point.Latitude,
		point.Longitude,
		point.FillLevel,
		point.WasteType,
		point.LastEmptiedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update recycling point %d: %w", point.ID, err)
	}
	return &p, nil
}

// DeletePoint removes the point permanently
func (r *Repository) DeletePoint(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recycling_points WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete recycling point %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPoint(row pgx.Row) (models.RecyclingPoint, error) {
	var p models.RecyclingPoint
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Latitude,
		&p.Longitude,
		&p.FillLevel,
		&p.WasteType,
		&p.LastEmptiedAt,
		&p.CreatedAt,
	)
	return p, err
}

func listQuery(filter models.PointFilter) (string, []any, error) {
	query := builder.Select(pointColumns).From("recycling_points").OrderBy("id")
	if filter.WasteType != "" {
		query = query.Where(squirrel.Eq{"waste_type": filter.WasteType})
	}
	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + escapeLike(filter.Name) + "%"})
	}
	return query.ToSql()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
