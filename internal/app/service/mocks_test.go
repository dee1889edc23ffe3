package service

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"
	"triviaquiz/internal/common"
	"triviaquiz/internal/common/security"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

// In-memory repository fakes. The *sql.Tx arguments come from sqlmock and
// are never touched; the fakes only track what was written.

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) add(u model.User) {
	copied := u
	r.users[u.ID] = &copied
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	r.add(*user)
	return nil
}

func (r *fakeUserRepo) CreateMany(ctx context.Context, tx *sql.Tx, users []model.User) error {
	for _, u := range users {
		r.add(u)
	}
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	r.add(*user)
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) DeleteByRole(ctx context.Context, tx *sql.Tx, role string) error {
	for id, u := range r.users {
		if u.Role == role {
			delete(r.users, id)
		}
	}
	return nil
}

func (r *fakeUserRepo) DeleteByUsernames(ctx context.Context, tx *sql.Tx, usernames []string) error {
	for id, u := range r.users {
		for _, name := range usernames {
			if u.Username == name {
				delete(r.users, id)
			}
		}
	}
	return nil
}

type fakeQuizRepo struct {
	quizzes   map[string]*model.Quiz
	questions []model.Question
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: map[string]*model.Quiz{}}
}

func (r *fakeQuizRepo) Create(ctx context.Context, tx *sql.Tx, quiz *model.Quiz) error {
	copied := *quiz
	r.quizzes[quiz.ID] = &copied
	return nil
}

func (r *fakeQuizRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	r.quizzes = map[string]*model.Quiz{}
	r.questions = nil
	return nil
}

func (r *fakeQuizRepo) Delete(ctx context.Context, id string) error {
	delete(r.quizzes, id)
	kept := r.questions[:0]
	for _, q := range r.questions {
		if q.QuizID != id {
			kept = append(kept, q)
		}
	}
	r.questions = kept
	return nil
}

func (r *fakeQuizRepo) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	if q, ok := r.quizzes[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeQuizRepo) ListAll(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	for _, q := range r.quizzes {
		quizzes = append(quizzes, *q)
	}
	return quizzes, nil
}

func (r *fakeQuizRepo) ListPast(ctx context.Context, now time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	for _, q := range r.quizzes {
		if q.EndDate.Before(now) {
			quizzes = append(quizzes, *q)
		}
	}
	return quizzes, nil
}

func (r *fakeQuizRepo) ListPresent(ctx context.Context, now time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	for _, q := range r.quizzes {
		if !q.StartDate.After(now) && !q.EndDate.Before(now) {
			quizzes = append(quizzes, *q)
		}
	}
	return quizzes, nil
}

func (r *fakeQuizRepo) ListFuture(ctx context.Context, now time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	for _, q := range r.quizzes {
		if q.StartDate.After(now) {
			quizzes = append(quizzes, *q)
		}
	}
	return quizzes, nil
}

func (r *fakeQuizRepo) AddQuestions(ctx context.Context, tx *sql.Tx, questions []model.Question) error {
	r.questions = append(r.questions, questions...)
	return nil
}

func (r *fakeQuizRepo) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]model.Question, error) {
	var questions []model.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

type fakeCategoryRepo struct {
	categories []model.Category
}

func (r *fakeCategoryRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	r.categories = nil
	return nil
}

func (r *fakeCategoryRepo) CreateMany(ctx context.Context, tx *sql.Tx, categories []model.Category) error {
	r.categories = append(r.categories, categories...)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return r.categories, nil
}

type fakeParticipationRepo struct {
	answers []model.UserQuestionAnswer
	scores  []model.UserQuizScore
}

func (r *fakeParticipationRepo) CreateAnswers(ctx context.Context, tx *sql.Tx, answers []model.UserQuestionAnswer) error {
	r.answers = append(r.answers, answers...)
	return nil
}

func (r *fakeParticipationRepo) CreateScore(ctx context.Context, tx *sql.Tx, score *model.UserQuizScore) error {
	r.scores = append(r.scores, *score)
	return nil
}

func (r *fakeParticipationRepo) AverageScoreByQuizID(ctx context.Context, quizID string) (float64, error) {
	sum, n := 0, 0
	for _, s := range r.scores {
		if s.QuizID == quizID {
			sum += s.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}
