package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

func (r *FlashcardRepo) Create(ctx context.Context, c *models.Flashcard) error {
	c.ID = uuid.New()

	query := `INSERT INTO flashcards (id, deck_id, question, answer, image_url)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query, c.ID, c.DeckID, c.Question, c.Answer, c.ImageURL).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *FlashcardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flashcard, error) {
	c := &models.Flashcard{}
	query := `SELECT id, deck_id, question, answer, image_url, created_at, updated_at
		FROM flashcards WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *FlashcardRepo) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]models.Flashcard, error) {
	query := `SELECT id, deck_id, question, answer, image_url, created_at, updated_at
		FROM flashcards WHERE deck_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c := models.Flashcard{}
		err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ListByIDs fetches the requested cards; callers compare the result length
// against the request to detect missing ids.
func (r *FlashcardRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Flashcard, error) {
	query := `SELECT id, deck_id, question, answer, image_url, created_at, updated_at
		FROM flashcards WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c := models.Flashcard{}
		err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *FlashcardRepo) Update(ctx context.Context, c *models.Flashcard) error {
	query := `UPDATE flashcards SET question = $1, answer = $2, image_url = $3, updated_at = NOW()
		WHERE id = $4 RETURNING updated_at`

	return r.pool.QueryRow(ctx, query, c.Question, c.Answer, c.ImageURL, c.ID).Scan(&c.UpdatedAt)
}

// Delete removes the card and its progress rows together.
func (r *FlashcardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM progress WHERE flashcard_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM flashcards WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CopyToDeck clones the given cards into the target deck. Image paths are
// copied as-is; the clones share the stored file.
func (r *FlashcardRepo) CopyToDeck(ctx context.Context, targetDeckID uuid.UUID, cards []models.Flashcard) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	copied := 0
	for _, c := range cards {
		_, err := tx.Exec(ctx,
			`INSERT INTO flashcards (id, deck_id, question, answer, image_url)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), targetDeckID, c.Question, c.Answer, c.ImageURL,
		)
		if err != nil {
			return 0, err
		}
		copied++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return copied, nil
}

// MoveToDeck repoints deck_id for the given cards. Progress rows stay with the
// card, so per-user mastery follows it into the new deck.
func (r *FlashcardRepo) MoveToDeck(ctx context.Context, targetDeckID uuid.UUID, ids []uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE flashcards SET deck_id = $1, updated_at = NOW() WHERE id = ANY($2)",
		targetDeckID, ids,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
