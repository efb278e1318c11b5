package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flashdeck-backend/internal/models"
)

// FlashcardReader is the read-only card access the grader needs.
type FlashcardReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error)
}

// ProgressStore is the mastery ledger. RecordResult applies the status write
// and the deck-wide stat reads as one unit: on error no mutation is observed,
// and concurrent submissions for the same (user, flashcard) pair collapse
// into a single row.
type ProgressStore interface {
	RecordResult(ctx context.Context, userID, flashcardID, deckID uuid.UUID, status string) (*models.Progress, int, int, error)
}

// GradingService grades free-text answers and maintains the progress ledger.
type GradingService struct {
	cards    FlashcardReader
	progress ProgressStore
}

func NewGradingService(cards FlashcardReader, progress ProgressStore) *GradingService {
	return &GradingService{cards: cards, progress: progress}
}

// GradeAnswer compares the submitted answer against the stored one, records
// the resulting mastery status, and returns recomputed deck-wide stats.
func (s *GradingService) GradeAnswer(ctx context.Context, flashcardID uuid.UUID, userID uuid.UUID, submitted string) (*models.AnswerResult, error) {
	if userID == uuid.Nil {
		return nil, &UnauthorizedError{Message: "User not found"}
	}
	if flashcardID == uuid.Nil || strings.TrimSpace(submitted) == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"user_answer": "Missing required fields",
		}}
	}

	card, err := s.cards.GetByID(ctx, flashcardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Flashcard not found"}
		}
		return nil, err
	}

	isCorrect := normalizeAnswer(submitted) == normalizeAnswer(card.Answer)
	status := models.StatusNeedsReview
	if isCorrect {
		status = models.StatusMastered
	}

	recorded, total, mastered, err := s.progress.RecordResult(ctx, userID, flashcardID, card.DeckID, status)
	if err != nil {
		return nil, err
	}

	return &models.AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: card.Answer,
		Progress: models.DeckProgress{
			CurrentCardStatus:        recorded.Status,
			DeckCompletionPercentage: completionPercentage(mastered, total),
			TotalFlashcards:          total,
			Mastered:                 mastered,
		},
	}, nil
}

// normalizeAnswer trims surrounding whitespace and case-folds before compare.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func completionPercentage(mastered, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(mastered) / float64(total) * 100))
}
