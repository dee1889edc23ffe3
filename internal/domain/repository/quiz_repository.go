package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"triviaquiz/internal/common"
	"triviaquiz/internal/domain/model"
)

type QuizRepository interface {
	Create(ctx context.Context, tx *sql.Tx, quiz *model.Quiz) error
	DeleteAll(ctx context.Context, tx *sql.Tx) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
	ListAll(ctx context.Context) ([]model.Quiz, error)
	ListPast(ctx context.Context, now time.Time) ([]model.Quiz, error)
	ListPresent(ctx context.Context, now time.Time) ([]model.Quiz, error)
	ListFuture(ctx context.Context, now time.Time) ([]model.Quiz, error)

	AddQuestions(ctx context.Context, tx *sql.Tx, questions []model.Question) error
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]model.Question, error)
}

const quizColumns = `id, name, category_id, type, difficulty, start_date, end_date, created_at, updated_at`

type pgQuizRepository struct {
	db *sql.DB
}

func NewPgQuizRepository(db *sql.DB) QuizRepository {
	return &pgQuizRepository{db: db}
}

func (r *pgQuizRepository) Create(ctx context.Context, tx *sql.Tx, q *model.Quiz) error {
	query := `INSERT INTO quizzes (id, name, category_id, type, difficulty, start_date, end_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := tx.ExecContext(ctx, query, q.ID, q.Name, q.CategoryID, q.Type, q.Difficulty, q.StartDate, q.EndDate)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuizRepository) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM quizzes`); err != nil {
		return fmt.Errorf("pgQuizRepository.DeleteAll: %w", err)
	}
	return nil
}

func (r *pgQuizRepository) Delete(ctx context.Context, id string) error {
	// Questions go with the quiz via ON DELETE CASCADE.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("pgQuizRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgQuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`
	quiz := &model.Quiz{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&quiz.ID, &quiz.Name, &quiz.CategoryID, &quiz.Type, &quiz.Difficulty,
		&quiz.StartDate, &quiz.EndDate, &quiz.CreatedAt, &quiz.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuizRepository.FindByID: %w", err)
	}
	return quiz, nil
}

func (r *pgQuizRepository) ListAll(ctx context.Context) ([]model.Quiz, error) {
	return r.list(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY start_date`)
}

func (r *pgQuizRepository) ListPast(ctx context.Context, now time.Time) ([]model.Quiz, error) {
	return r.list(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE end_date < $1 ORDER BY start_date`, now)
}

func (r *pgQuizRepository) ListPresent(ctx context.Context, now time.Time) ([]model.Quiz, error) {
	return r.list(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE start_date <= $1 AND end_date >= $1 ORDER BY start_date`, now)
}

func (r *pgQuizRepository) ListFuture(ctx context.Context, now time.Time) ([]model.Quiz, error) {
	return r.list(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE start_date > $1 ORDER BY start_date`, now)
}

func (r *pgQuizRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.list: %w", err)
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(
			&q.ID, &q.Name, &q.CategoryID, &q.Type, &q.Difficulty,
			&q.StartDate, &q.EndDate, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgQuizRepository.list: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (r *pgQuizRepository) AddQuestions(ctx context.Context, tx *sql.Tx, questions []model.Question) error {
	query := `INSERT INTO questions (id, quiz_id, question, correct_answer, incorrect_answers, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range questions {
		q := &questions[i]
		incorrect, err := json.Marshal(q.IncorrectAnswers)
		if err != nil {
			return fmt.Errorf("pgQuizRepository.AddQuestions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, q.ID, q.QuizID, q.Question, q.CorrectAnswer, incorrect, q.SortOrder); err != nil {
			return fmt.Errorf("pgQuizRepository.AddQuestions: %w", err)
		}
	}
	return nil
}

func (r *pgQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]model.Question, error) {
	query := `SELECT id, quiz_id, question, correct_answer, incorrect_answers, sort_order, created_at
	          FROM questions WHERE quiz_id = $1 ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.GetQuestionsByQuizID: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var incorrect []byte
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Question, &q.CorrectAnswer, &incorrect, &q.SortOrder, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgQuizRepository.GetQuestionsByQuizID: %w", err)
		}
		if err := json.Unmarshal(incorrect, &q.IncorrectAnswers); err != nil {
			return nil, fmt.Errorf("pgQuizRepository.GetQuestionsByQuizID: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
