package repository

import (
	"context"
	"database/sql"
	"fmt"
	"triviaquiz/internal/domain/model"
)

type CategoryRepository interface {
	DeleteAll(ctx context.Context, tx *sql.Tx) error
	CreateMany(ctx context.Context, tx *sql.Tx, categories []model.Category) error
	List(ctx context.Context) ([]model.Category, error)
}

type pgCategoryRepository struct {
	db *sql.DB
}

func NewPgCategoryRepository(db *sql.DB) CategoryRepository {
	return &pgCategoryRepository{db: db}
}

func (r *pgCategoryRepository) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("pgCategoryRepository.DeleteAll: %w", err)
	}
	return nil
}

func (r *pgCategoryRepository) CreateMany(ctx context.Context, tx *sql.Tx, categories []model.Category) error {
	query := `INSERT INTO categories (id, name) VALUES ($1, $2)`
	for _, c := range categories {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.Name); err != nil {
			return fmt.Errorf("pgCategoryRepository.CreateMany: %w", err)
		}
	}
	return nil
}

func (r *pgCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("pgCategoryRepository.List: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
