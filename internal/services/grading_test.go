package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flashdeck-backend/internal/models"
)

type fakeFlashcardReader struct {
	cards map[uuid.UUID]*models.Flashcard
}

func (f *fakeFlashcardReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return card, nil
}

type progressKey struct {
	userID      uuid.UUID
	flashcardID uuid.UUID
}

// fakeProgressStore keeps one row per (user, flashcard) pair, like the
// unique constraint on the progress table. A configured error rolls the
// whole call back: nothing is written and no stats are returned.
type fakeProgressStore struct {
	mu    sync.Mutex
	rows  map[progressKey]string
	total int
	err   error
}

func newFakeProgressStore(total int) *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[progressKey]string), total: total}
}

func (f *fakeProgressStore) RecordResult(ctx context.Context, userID, flashcardID, deckID uuid.UUID, status string) (*models.Progress, int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, 0, 0, f.err
	}

	f.rows[progressKey{userID, flashcardID}] = status

	mastered := 0
	for key, s := range f.rows {
		if key.userID == userID && s == models.StatusMastered {
			mastered++
		}
	}

	return &models.Progress{
		ID:          uuid.New(),
		UserID:      userID,
		FlashcardID: flashcardID,
		Status:      status,
		UpdatedAt:   time.Now(),
	}, f.total, mastered, nil
}

func gradingFixture(total int) (*GradingService, *models.Flashcard, *fakeProgressStore) {
	card := &models.Flashcard{
		ID:       uuid.New(),
		DeckID:   uuid.New(),
		Question: "Capital of France?",
		Answer:   "Paris",
	}
	cards := &fakeFlashcardReader{
		cards: map[uuid.UUID]*models.Flashcard{card.ID: card},
	}
	progress := newFakeProgressStore(total)
	return NewGradingService(cards, progress), card, progress
}

func TestGradeAnswer_NormalizesBeforeComparing(t *testing.T) {
	svc, card, _ := gradingFixture(4)
	userID := uuid.New()

	result, err := svc.GradeAnswer(context.Background(), card.ID, userID, "  pARIs ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.IsCorrect {
		t.Error("expected whitespace and case differences to be ignored")
	}
	if result.CorrectAnswer != "Paris" {
		t.Errorf("expected original-cased answer, got %q", result.CorrectAnswer)
	}
	if result.Progress.CurrentCardStatus != models.StatusMastered {
		t.Errorf("expected status %s, got %s", models.StatusMastered, result.Progress.CurrentCardStatus)
	}
	if result.Progress.Mastered != 1 {
		t.Errorf("expected 1 mastered, got %d", result.Progress.Mastered)
	}
	if result.Progress.DeckCompletionPercentage != 25 {
		t.Errorf("expected 25%%, got %d%%", result.Progress.DeckCompletionPercentage)
	}
}

func TestGradeAnswer_WrongAnswerNeedsReview(t *testing.T) {
	svc, card, _ := gradingFixture(4)

	result, err := svc.GradeAnswer(context.Background(), card.ID, uuid.New(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.IsCorrect {
		t.Error("expected wrong answer to be marked incorrect")
	}
	if result.Progress.CurrentCardStatus != models.StatusNeedsReview {
		t.Errorf("expected status %s, got %s", models.StatusNeedsReview, result.Progress.CurrentCardStatus)
	}
	if result.Progress.DeckCompletionPercentage != 0 {
		t.Errorf("expected 0%%, got %d%%", result.Progress.DeckCompletionPercentage)
	}
}

func TestGradeAnswer_ResubmitOverwritesStatus(t *testing.T) {
	svc, card, progress := gradingFixture(4)
	userID := uuid.New()

	if _, err := svc.GradeAnswer(context.Background(), card.ID, userID, "Paris"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	result, err := svc.GradeAnswer(context.Background(), card.ID, userID, "London")
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if len(progress.rows) != 1 {
		t.Fatalf("expected one ledger row per pair, got %d", len(progress.rows))
	}
	if result.Progress.CurrentCardStatus != models.StatusNeedsReview {
		t.Errorf("expected latest status to win, got %s", result.Progress.CurrentCardStatus)
	}
	if result.Progress.Mastered != 0 {
		t.Errorf("expected mastered count reset to 0, got %d", result.Progress.Mastered)
	}
}

func TestGradeAnswer_ConcurrentSubmitsKeepOneRow(t *testing.T) {
	svc, card, progress := gradingFixture(4)
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GradeAnswer(context.Background(), card.ID, userID, "Paris"); err != nil {
				t.Errorf("concurrent submit: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(progress.rows) != 1 {
		t.Errorf("expected one ledger row, got %d", len(progress.rows))
	}
}

func TestGradeAnswer_LedgerFailureLeavesNoMutation(t *testing.T) {
	svc, card, progress := gradingFixture(4)
	progress.err = errors.New("connection reset")

	_, err := svc.GradeAnswer(context.Background(), card.ID, uuid.New(), "Paris")
	if err == nil {
		t.Fatal("expected a persistence error to surface")
	}
	if len(progress.rows) != 0 {
		t.Errorf("expected no ledger row after a failed write, got %d", len(progress.rows))
	}
}

func TestGradeAnswer_EmptyDeckPercentageIsZero(t *testing.T) {
	svc, card, _ := gradingFixture(0)

	result, err := svc.GradeAnswer(context.Background(), card.ID, uuid.New(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Progress.DeckCompletionPercentage != 0 {
		t.Errorf("expected 0%% for empty deck, got %d%%", result.Progress.DeckCompletionPercentage)
	}
}

func TestGradeAnswer_InputValidation(t *testing.T) {
	svc, card, _ := gradingFixture(4)

	_, err := svc.GradeAnswer(context.Background(), card.ID, uuid.Nil, "Paris")
	if _, ok := err.(*UnauthorizedError); !ok {
		t.Errorf("expected UnauthorizedError for nil user, got %v", err)
	}

	_, err = svc.GradeAnswer(context.Background(), uuid.Nil, uuid.New(), "Paris")
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected ValidationError for nil flashcard, got %v", err)
	}

	_, err = svc.GradeAnswer(context.Background(), card.ID, uuid.New(), "   ")
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected ValidationError for blank answer, got %v", err)
	}

	_, err = svc.GradeAnswer(context.Background(), uuid.New(), uuid.New(), "Paris")
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("expected NotFoundError for unknown flashcard, got %v", err)
	}
}
