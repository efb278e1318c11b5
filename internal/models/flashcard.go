package models

import (
	"time"

	"github.com/google/uuid"
)

type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CopyFlashcardsRequest struct {
	FlashcardIDs []uuid.UUID `json:"flashcard_ids"`
}

type MoveFlashcardsRequest struct {
	FlashcardIDs []uuid.UUID `json:"flashcard_ids"`
	TargetDeckID uuid.UUID   `json:"target_deck_id"`
}

type MoveFlashcardsResult struct {
	MovedCount      int `json:"moved_count"`
	AlreadyInTarget int `json:"already_in_target_deck_count"`
	TotalSelected   int `json:"total_selected"`
}
