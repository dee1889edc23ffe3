package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"
	"triviaquiz/internal/common"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/domain/repository"
	"triviaquiz/internal/platform/trivia"

	"github.com/google/uuid"
)

const questionsPerQuiz = 10

// maxQuizDurationDays caps the participation window length.
const maxQuizDurationDays = 5

type QuizService struct {
	quizRepo     repository.QuizRepository
	triviaClient *trivia.Client
	db           *sql.DB // For transactions

	now func() time.Time
}

func NewQuizService(quizRepo repository.QuizRepository, triviaClient *trivia.Client, db *sql.DB) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		triviaClient: triviaClient,
		db:           db,
		now:          time.Now,
	}
}

type SeedQuizRequest struct {
	Name       string               `json:"name"`
	CategoryID int                  `json:"categoryId"`
	Type       model.QuizType       `json:"type"`
	Difficulty model.QuizDifficulty `json:"difficulty"`
	StartDate  time.Time            `json:"startDate"`
	EndDate    time.Time            `json:"endDate"`
}

type SeedQuizResponse struct {
	Msg       string           `json:"msg"`
	Data      *model.Quiz      `json:"data,omitempty"`
	Questions []model.Question `json:"questions,omitempty"`
}

type QuizzesResponse struct {
	Msg  string       `json:"msg,omitempty"`
	Data []model.Quiz `json:"data,omitempty"`
}

type DeleteQuizResponse struct {
	Msg string `json:"msg"`
}

// validateWindow reports date-window violations as soft messages, not
// error statuses.
func (s *QuizService) validateWindow(req SeedQuizRequest) string {
	now := s.now()
	if req.StartDate.Before(now) {
		return "Start date cannot be before today's date"
	}
	if req.StartDate.After(req.EndDate) {
		return "Start date cannot be greater than end date"
	}
	days := int(math.Ceil(req.EndDate.Sub(req.StartDate).Hours() / 24))
	if days > maxQuizDurationDays {
		return "Quiz duration cannot be longer than five days"
	}
	return ""
}

// SeedQuiz replaces the whole quiz collection with one freshly created quiz
// and its fixed question set pulled from the trivia provider. Wipe, quiz
// insert and question inserts share one transaction.
func (s *QuizService) SeedQuiz(ctx context.Context, req SeedQuizRequest) (*SeedQuizResponse, error) {
	raw, err := s.triviaClient.FetchQuestions(ctx, questionsPerQuiz, req.CategoryID, string(req.Difficulty), string(req.Type))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	if msg := s.validateWindow(req); msg != "" {
		return &SeedQuizResponse{Msg: msg}, nil
	}

	quiz := &model.Quiz{
		ID:         uuid.NewString(),
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Difficulty: req.Difficulty,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	questions := make([]model.Question, 0, len(raw))
	for i, rq := range raw {
		questions = append(questions, model.Question{
			ID:               uuid.NewString(),
			QuizID:           quiz.ID,
			Question:         rq.Question,
			CorrectAnswer:    rq.CorrectAnswer,
			IncorrectAnswers: rq.IncorrectAnswers,
			SortOrder:        i,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.quizRepo.DeleteAll(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to delete quizzes: %w", err)
	}
	if err := s.quizRepo.Create(ctx, tx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	if err := s.quizRepo.AddQuestions(ctx, tx, questions); err != nil {
		return nil, fmt.Errorf("failed to add questions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &SeedQuizResponse{Msg: "Quiz successfully created", Data: quiz, Questions: questions}, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context) (*QuizzesResponse, error) {
	quizzes, err := s.quizRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		return &QuizzesResponse{Msg: "No quizzes found"}, nil
	}
	return &QuizzesResponse{Data: quizzes}, nil
}

// ListPastQuizzes returns quizzes whose window has fully closed. The three
// time classes are mutually exclusive at any instant.
func (s *QuizService) ListPastQuizzes(ctx context.Context) (*QuizzesResponse, error) {
	quizzes, err := s.quizRepo.ListPast(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list past quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		return &QuizzesResponse{Msg: "No past quizzes found"}, nil
	}
	return &QuizzesResponse{Data: quizzes}, nil
}

func (s *QuizService) ListPresentQuizzes(ctx context.Context) (*QuizzesResponse, error) {
	quizzes, err := s.quizRepo.ListPresent(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list present quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		return &QuizzesResponse{Msg: "No present quizzes found"}, nil
	}
	return &QuizzesResponse{Data: quizzes}, nil
}

func (s *QuizService) ListFutureQuizzes(ctx context.Context) (*QuizzesResponse, error) {
	quizzes, err := s.quizRepo.ListFuture(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list future quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		return &QuizzesResponse{Msg: "No future quizzes found"}, nil
	}
	return &QuizzesResponse{Data: quizzes}, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) (*DeleteQuizResponse, error) {
	if _, err := s.quizRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Absent id reported as 200 with a message, not 404
			return &DeleteQuizResponse{Msg: fmt.Sprintf("No quiz with the id: %s found", id)}, nil
		}
		return nil, fmt.Errorf("failed to find quiz: %w", err)
	}

	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete quiz: %w", err)
	}

	return &DeleteQuizResponse{Msg: fmt.Sprintf("Quiz with the id: %s successfully deleted", id)}, nil
}
