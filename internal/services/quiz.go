package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"flashdeck-backend/internal/models"
)

// DeckReader is the read-only deck access the quiz assembler needs.
type DeckReader interface {
	GetWithFlashcards(ctx context.Context, id uuid.UUID) (*models.Deck, []models.Flashcard, error)
}

// QuizService assembles the multiple-choice question set for a deck.
type QuizService struct {
	decks       DeckReader
	distractors *DistractorService
}

func NewQuizService(decks DeckReader, distractors *DistractorService) *QuizService {
	return &QuizService{decks: decks, distractors: distractors}
}

// BuildQuiz returns one question per flashcard, in deck order. Distractor
// synthesis runs concurrently per card; a failing card degrades to the
// synthesizer's fallback options rather than aborting the batch.
func (s *QuizService) BuildQuiz(ctx context.Context, deckID uuid.UUID) (*models.QuizResponse, error) {
	deck, cards, err := s.decks.GetWithFlashcards(ctx, deckID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Deck not found"}
		}
		return nil, err
	}

	if len(cards) == 0 {
		return nil, &EmptyDeckError{Message: "Deck is empty, add flashcards first"}
	}

	// Index-addressed writes keep deck order regardless of completion order.
	questions := make([]models.QuizQuestion, len(cards))

	var wg sync.WaitGroup
	for i, card := range cards {
		wg.Add(1)
		go func(i int, card models.Flashcard) {
			defer wg.Done()

			options := s.distractors.Synthesize(ctx, card.Question, card.Answer)
			options = append(options, card.Answer)
			rand.Shuffle(len(options), func(a, b int) {
				options[a], options[b] = options[b], options[a]
			})

			questions[i] = models.QuizQuestion{
				FlashcardID:   card.ID,
				Question:      card.Question,
				Options:       options,
				CorrectAnswer: card.Answer,
				ImageURL:      card.ImageURL,
			}
		}(i, card)
	}
	wg.Wait()

	return &models.QuizResponse{
		DeckID:    deck.ID,
		Questions: questions,
	}, nil
}
