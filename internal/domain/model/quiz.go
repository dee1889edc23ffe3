package model

import (
	"time"
)

type QuizDifficulty string
type QuizType string

const (
	DifficultyEasy   QuizDifficulty = "easy"
	DifficultyMedium QuizDifficulty = "medium"
	DifficultyHard   QuizDifficulty = "hard"

	TypeMultiple QuizType = "multiple"
	TypeBoolean  QuizType = "boolean"
)

// Quiz owns its questions; deleting a quiz cascades to them. The [StartDate,
// EndDate] interval is the participation window.
type Quiz struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	CategoryID int            `json:"categoryId"`
	Type       QuizType       `json:"type"`
	Difficulty QuizDifficulty `json:"difficulty"`
	StartDate  time.Time      `json:"startDate"`
	EndDate    time.Time      `json:"endDate"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type Question struct {
	ID               string    `json:"id"`
	QuizID           string    `json:"quizId"`
	Question         string    `json:"question"`
	CorrectAnswer    string    `json:"correctAnswer"`
	IncorrectAnswers []string  `json:"incorrectAnswers"`
	SortOrder        int       `json:"sortOrder"`
	CreatedAt        time.Time `json:"createdAt"`
}
