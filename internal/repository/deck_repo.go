package repository

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashdeck-backend/internal/models"
)

type DeckRepo struct {
	pool *pgxpool.Pool
}

func NewDeckRepo(pool *pgxpool.Pool) *DeckRepo {
	return &DeckRepo{pool: pool}
}

func (r *DeckRepo) Create(ctx context.Context, d *models.Deck) error {
	d.ID = uuid.New()

	query := `INSERT INTO decks (id, user_id, name, category)
		VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query, d.ID, d.UserID, d.Name, d.Category).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *DeckRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deck, error) {
	d := &models.Deck{}
	query := `SELECT id, user_id, name, category, created_at, updated_at
		FROM decks WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Category, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GetWithFlashcards returns a deck and its cards in insertion order.
// Returns pgx.ErrNoRows when the deck does not exist.
func (r *DeckRepo) GetWithFlashcards(ctx context.Context, id uuid.UUID) (*models.Deck, []models.Flashcard, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	query := `SELECT id, deck_id, question, answer, image_url, created_at, updated_at
		FROM flashcards WHERE deck_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		c := models.Flashcard{}
		err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, nil, err
		}
		cards = append(cards, c)
	}
	return d, cards, rows.Err()
}

// ListByUserWithProgress returns the user's decks with per-deck mastery counts
// folded in, so the deck list screen needs a single query.
func (r *DeckRepo) ListByUserWithProgress(ctx context.Context, userID uuid.UUID) ([]models.DeckSummary, error) {
	query := `
		SELECT d.id, d.name, d.category, d.created_at,
			COUNT(f.id) AS flashcard_count,
			COUNT(p.id) AS mastered
		FROM decks d
		LEFT JOIN flashcards f ON f.deck_id = d.id
		LEFT JOIN progress p ON p.flashcard_id = f.id AND p.user_id = $1 AND p.status = 'MASTERED'
		WHERE d.user_id = $1
		GROUP BY d.id
		ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []models.DeckSummary
	for rows.Next() {
		s := models.DeckSummary{}
		err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt, &s.FlashcardCount, &s.Mastered)
		if err != nil {
			return nil, err
		}
		if s.FlashcardCount > 0 {
			s.Percentage = int(math.Round(float64(s.Mastered) / float64(s.FlashcardCount) * 100))
		}
		decks = append(decks, s)
	}
	return decks, rows.Err()
}

func (r *DeckRepo) Update(ctx context.Context, d *models.Deck) error {
	query := `UPDATE decks SET name = $1, category = $2, updated_at = NOW()
		WHERE id = $3 RETURNING updated_at`

	return r.pool.QueryRow(ctx, query, d.Name, d.Category, d.ID).Scan(&d.UpdatedAt)
}

// Delete removes the deck, its flashcards, and their progress rows in one
// transaction so a failed delete leaves everything in place.
func (r *DeckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM progress WHERE flashcard_id IN (SELECT id FROM flashcards WHERE deck_id = $1)", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM flashcards WHERE deck_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM decks WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
