package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"triviaquiz/internal/common"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/domain/repository"

	"github.com/google/uuid"
)

type ParticipationService struct {
	participationRepo repository.ParticipationRepository
	quizRepo          repository.QuizRepository
	userRepo          repository.UserRepository
	db                *sql.DB // For transactions

	now func() time.Time
}

func NewParticipationService(
	participationRepo repository.ParticipationRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	db *sql.DB,
) *ParticipationService {
	return &ParticipationService{
		participationRepo: participationRepo,
		quizRepo:          quizRepo,
		userRepo:          userRepo,
		db:                db,
		now:               time.Now,
	}
}

type ParticipateRequest struct {
	Answers []string `json:"answers"`
}

type ParticipateResponse struct {
	Msg          string  `json:"msg"`
	UserScore    int     `json:"userScore"`
	QuizAvgScore float64 `json:"quizAvgScore"`
}

// Participate grades the submitted answers positionally against the quiz's
// stored questions, persists the audit rows and the score in one
// transaction, and returns the caller's score with the quiz average.
// Repeat participation is allowed; every attempt adds a score row.
func (s *ParticipationService) Participate(ctx context.Context, userID, quizID string, answers []string) (*ParticipateResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	quiz, err := s.quizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Quiz not found")
		}
		return nil, fmt.Errorf("failed to find quiz: %w", err)
	}

	if !s.now().Before(quiz.EndDate) {
		return nil, common.NewError(common.ErrBadRequest, "Quiz has already ended")
	}

	questions, err := s.quizRepo.GetQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	// Checked before anything is persisted
	if len(questions) != len(answers) {
		return nil, common.NewError(common.ErrBadRequest, "Number of answers must match the number of questions")
	}

	score := 0
	auditRows := make([]model.UserQuestionAnswer, 0, len(questions))
	for i, question := range questions {
		isCorrect := question.CorrectAnswer == answers[i]
		if isCorrect {
			score++
		}
		auditRows = append(auditRows, model.UserQuestionAnswer{
			ID:         uuid.NewString(),
			UserID:     userID,
			QuizID:     quizID,
			QuestionID: question.ID,
			Answer:     answers[i],
			IsCorrect:  isCorrect,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.participationRepo.CreateAnswers(ctx, tx, auditRows); err != nil {
		return nil, fmt.Errorf("failed to record answers: %w", err)
	}
	if err := s.participationRepo.CreateScore(ctx, tx, &model.UserQuizScore{
		ID:     uuid.NewString(),
		UserID: userID,
		QuizID: quizID,
		Score:  score,
	}); err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	avg, err := s.participationRepo.AverageScoreByQuizID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average score: %w", err)
	}

	return &ParticipateResponse{
		Msg:          fmt.Sprintf("%s has successfully participated in %s", user.Username, quiz.Name),
		UserScore:    score,
		QuizAvgScore: avg,
	}, nil
}
