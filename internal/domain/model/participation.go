package model

import (
	"time"
)

// UserQuestionAnswer is one append-only audit row per answered question.
type UserQuestionAnswer struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	QuizID     string    `json:"quizId"`
	QuestionID string    `json:"questionId"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"isCorrect"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserQuizScore records one participation attempt. A user may hold several
// rows for the same quiz; every attempt counts toward the quiz average.
type UserQuizScore struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	QuizID    string    `json:"quizId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}
