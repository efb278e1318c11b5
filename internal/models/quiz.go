package models

import "github.com/google/uuid"

// QuizQuestion is assembled per request and never persisted.
type QuizQuestion struct {
	FlashcardID   uuid.UUID `json:"flashcard_id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	ImageURL      *string   `json:"image_url"`
}

type QuizResponse struct {
	DeckID    uuid.UUID      `json:"deck_id"`
	Questions []QuizQuestion `json:"quiz"`
}

type AnswerRequest struct {
	UserAnswer string `json:"user_answer"`
}

type AnswerResult struct {
	IsCorrect     bool         `json:"is_correct"`
	CorrectAnswer string       `json:"correct_answer"`
	Progress      DeckProgress `json:"progress"`
}
