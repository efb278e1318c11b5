package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// RecordResult writes the latest mastery status for the (user, flashcard)
// pair and reads the deck-wide stats in the same transaction: a failed stat
// read rolls the status write back, so callers never observe a submission
// that was half applied. The unique pair constraint plus ON CONFLICT makes
// concurrent submissions collapse into a single row instead of racing a
// read-then-insert.
func (r *ProgressRepo) RecordResult(ctx context.Context, userID, flashcardID, deckID uuid.UUID, status string) (*models.Progress, int, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	defer tx.Rollback(ctx)

	p := &models.Progress{
		UserID:      userID,
		FlashcardID: flashcardID,
		Status:      status,
	}

	upsert := `
		INSERT INTO progress (id, user_id, flashcard_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, flashcard_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, upsert, uuid.New(), userID, flashcardID, status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, 0, 0, err
	}

	var total int
	err = tx.QueryRow(ctx, "SELECT COUNT(*) FROM flashcards WHERE deck_id = $1", deckID).Scan(&total)
	if err != nil {
		return nil, 0, 0, err
	}

	var mastered int
	masteredQuery := `
		SELECT COUNT(*)
		FROM progress p
		JOIN flashcards f ON f.id = p.flashcard_id
		WHERE p.user_id = $1 AND f.deck_id = $2 AND p.status = $3`

	err = tx.QueryRow(ctx, masteredQuery, userID, deckID, models.StatusMastered).Scan(&mastered)
	if err != nil {
		return nil, 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, 0, err
	}
	return p, total, mastered, nil
}
