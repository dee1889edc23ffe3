package repository

import (
	"context"
	"database/sql"
	"fmt"
	"triviaquiz/internal/domain/model"
)

type ParticipationRepository interface {
	CreateAnswers(ctx context.Context, tx *sql.Tx, answers []model.UserQuestionAnswer) error
	CreateScore(ctx context.Context, tx *sql.Tx, score *model.UserQuizScore) error
	AverageScoreByQuizID(ctx context.Context, quizID string) (float64, error)
}

type pgParticipationRepository struct {
	db *sql.DB
}

func NewPgParticipationRepository(db *sql.DB) ParticipationRepository {
	return &pgParticipationRepository{db: db}
}

func (r *pgParticipationRepository) CreateAnswers(ctx context.Context, tx *sql.Tx, answers []model.UserQuestionAnswer) error {
	query := `INSERT INTO user_question_answers (id, user_id, quiz_id, question_id, answer, is_correct)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range answers {
		a := &answers[i]
		if _, err := tx.ExecContext(ctx, query, a.ID, a.UserID, a.QuizID, a.QuestionID, a.Answer, a.IsCorrect); err != nil {
			return fmt.Errorf("pgParticipationRepository.CreateAnswers: %w", err)
		}
	}
	return nil
}

func (r *pgParticipationRepository) CreateScore(ctx context.Context, tx *sql.Tx, score *model.UserQuizScore) error {
	query := `INSERT INTO user_quiz_scores (id, user_id, quiz_id, score) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, score.ID, score.UserID, score.QuizID, score.Score); err != nil {
		return fmt.Errorf("pgParticipationRepository.CreateScore: %w", err)
	}
	return nil
}

func (r *pgParticipationRepository) AverageScoreByQuizID(ctx context.Context, quizID string) (float64, error) {
	query := `SELECT COALESCE(AVG(score), 0) FROM user_quiz_scores WHERE quiz_id = $1`
	var avg float64
	if err := r.db.QueryRowContext(ctx, query, quizID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("pgParticipationRepository.AverageScoreByQuizID: %w", err)
	}
	return avg, nil
}
