package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pennywise-app/pennywise/internal/domain"
)

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, color, icon, created_at, updated_at
		FROM categories
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory returns one category by ID, or ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, color, icon, created_at, updated_at
		FROM categories
		WHERE id = $1`, id)

	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, ErrNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// CreateCategory inserts a category and returns the stored record.
// Category names are unique; duplicates fail with a constraint error.
func (s *Store) CreateCategory(ctx context.Context, in domain.NewCategory) (domain.Category, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO categories (name, color, icon)
		VALUES ($1, $2, $3)
		RETURNING id, name, color, icon, created_at, updated_at`,
		in.Name, in.Color, pgText(in.Icon))

	c, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (domain.Category, error) {
	var (
		c    domain.Category
		icon pgtype.Text
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Category{}, err
	}
	c.Icon = textOrEmpty(icon)
	return c, nil
}
