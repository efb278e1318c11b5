package models

import (
	"time"

	"github.com/google/uuid"
)

type Deck struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeckSummary is a deck row joined with the requesting user's mastery counts.
type DeckSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
	FlashcardCount int       `json:"flashcard_count"`
	Mastered       int       `json:"mastered"`
	Percentage     int       `json:"percentage"`
}

type DeckRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
