package models

import (
	"time"

	"github.com/google/uuid"
)

// Mastery status values stored on a progress row.
const (
	StatusMastered    = "MASTERED"
	StatusNeedsReview = "NEEDS_REVIEW"
)

// Progress records a user's latest result for one flashcard.
// At most one row exists per (user, flashcard) pair.
type Progress struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	FlashcardID uuid.UUID `json:"flashcard_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckProgress is the recomputed deck-wide completion bundle returned
// after every answer submission.
type DeckProgress struct {
	CurrentCardStatus        string `json:"currentCardStatus"`
	DeckCompletionPercentage int    `json:"deckCompletionPercentage"`
	TotalFlashcards          int    `json:"totalFlashcards"`
	Mastered                 int    `json:"mastered"`
}
