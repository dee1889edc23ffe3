package handler

import (
	"net/http"
	"triviaquiz/internal/app/service"
	"triviaquiz/internal/common"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Category seeding is mounted without the auth gate.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/seed", h.seedCategories)
}

func (h *CategoryHandler) seedCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.categoryService.SeedCategories(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
