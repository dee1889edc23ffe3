package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/platform/trivia"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryServiceForTest(t *testing.T, repo *fakeCategoryRepo, categories []trivia.RawCategory) (*CategoryService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"trivia_categories": categories})
	}))
	t.Cleanup(server.Close)

	return NewCategoryService(repo, trivia.NewClient(server.URL, server.Client()), db), mock
}

func TestSeedCategoriesReplacesCatalog(t *testing.T) {
	repo := &fakeCategoryRepo{categories: []model.Category{{ID: 99, Name: "Stale"}}}
	svc, mock := newCategoryServiceForTest(t, repo, []trivia.RawCategory{
		{ID: 9, Name: "General Knowledge"},
		{ID: 10, Name: "Entertainment: Books"},
	})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.SeedCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	// Only the fresh taxonomy survives
	assert.Equal(t, []model.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 10, Name: "Entertainment: Books"},
	}, repo.categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedCategoriesFetchFailureLeavesCatalogIntact(t *testing.T) {
	repo := &fakeCategoryRepo{categories: []model.Category{{ID: 99, Name: "Existing"}}}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	svc := NewCategoryService(repo, trivia.NewClient(server.URL, server.Client()), db)

	_, err = svc.SeedCategories(context.Background())
	require.Error(t, err)
	assert.Equal(t, []model.Category{{ID: 99, Name: "Existing"}}, repo.categories)
	require.NoError(t, mock.ExpectationsWereMet())
}
