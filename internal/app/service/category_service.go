package service

import (
	"context"
	"database/sql"
	"fmt"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/domain/repository"
	"triviaquiz/internal/platform/trivia"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	triviaClient *trivia.Client
	db           *sql.DB // For transactions
}

func NewCategoryService(categoryRepo repository.CategoryRepository, triviaClient *trivia.Client, db *sql.DB) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, triviaClient: triviaClient, db: db}
}

type CategoriesResponse struct {
	Data []model.Category `json:"data"`
}

// SeedCategories replaces the whole catalog with the provider's current
// taxonomy. The wipe and insert share one transaction so a mid-operation
// failure cannot leave the catalog empty.
func (s *CategoryService) SeedCategories(ctx context.Context) (*CategoriesResponse, error) {
	raw, err := s.triviaClient.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := make([]model.Category, 0, len(raw))
	for _, c := range raw {
		categories = append(categories, model.Category{ID: c.ID, Name: c.Name})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.categoryRepo.DeleteAll(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to delete categories: %w", err)
	}
	if err := s.categoryRepo.CreateMany(ctx, tx, categories); err != nil {
		return nil, fmt.Errorf("failed to insert categories: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &CategoriesResponse{Data: categories}, nil
}
