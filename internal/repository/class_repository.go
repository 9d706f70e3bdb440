package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/repository/base"
)

// ClassRepository reads the class registry owned by user management.
type ClassRepository struct {
	*base.Repository
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{Repository: base.NewRepository(pool)}
}

// List returns all classes ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	query := `
		SELECT id, name
		FROM classes
		ORDER BY name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, c)
	}

	return classes, rows.Err()
}

// Exists reports whether a class id is registered.
func (r *ClassRepository) Exists(ctx context.Context, classID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM classes WHERE id = $1
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, classID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check class exists: %w", err)
	}

	return exists, nil
}
