package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"triviaquiz/internal/api/middleware"
	"triviaquiz/internal/app/service"
	"triviaquiz/internal/common"
	"triviaquiz/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService          *service.QuizService
	participationService *service.ParticipationService
}

func NewQuizHandler(quizService *service.QuizService, participationService *service.ParticipationService) *QuizHandler {
	return &QuizHandler{quizService: quizService, participationService: participationService}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Group(func(viewer chi.Router) {
		viewer.Use(middleware.RequireRoles(model.RoleBasic, model.RoleAdmin))
		viewer.Get("/", h.listQuizzes)
		viewer.Get("/pastQuizzes", h.listPastQuizzes)
		viewer.Get("/presentQuizzes", h.listPresentQuizzes)
		viewer.Get("/futureQuizzes", h.listFutureQuizzes)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRoles(model.RoleAdmin))
		admin.Post("/seed", h.seedQuiz)
		admin.Delete("/{quizID}", h.deleteQuiz)
	})

	r.Group(func(basic chi.Router) {
		basic.Use(middleware.RequireRoles(model.RoleBasic))
		basic.Post("/participate/{quizID}", h.participate)
	})
}

func (h *QuizHandler) seedQuiz(w http.ResponseWriter, r *http.Request) {
	var req service.SeedQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.quizService.SeedQuiz(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.quizService.ListQuizzes)
}

func (h *QuizHandler) listPastQuizzes(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.quizService.ListPastQuizzes)
}

func (h *QuizHandler) listPresentQuizzes(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.quizService.ListPresentQuizzes)
}

func (h *QuizHandler) listFutureQuizzes(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.quizService.ListFutureQuizzes)
}

func (h *QuizHandler) respondList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context) (*service.QuizzesResponse, error)) {
	resp, err := list(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	resp, err := h.quizService.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) participate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.ParticipateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.participationService.Participate(r.Context(), userID, chi.URLParam(r, "quizID"), req.Answers)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}
