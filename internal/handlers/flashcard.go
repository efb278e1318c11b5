package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/repository"
	"flashdeck-backend/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB

type FlashcardHandler struct {
	flashRepo *repository.FlashcardRepo
	deckRepo  *repository.DeckRepo
	uploads   *storage.LocalStorage
}

func NewFlashcardHandler(flashRepo *repository.FlashcardRepo, deckRepo *repository.DeckRepo, uploads *storage.LocalStorage) *FlashcardHandler {
	return &FlashcardHandler{
		flashRepo: flashRepo,
		deckRepo:  deckRepo,
		uploads:   uploads,
	}
}

func (h *FlashcardHandler) ListByDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	if _, err := h.deckRepo.GetByID(r.Context(), deckID); err != nil {
		handleLookupError(w, r, err, "Deck not found")
		return
	}

	cards, err := h.flashRepo.ListByDeck(r.Context(), deckID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch flashcards", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"flashcards": cards})
}

// Create accepts multipart form data: question, answer, and an optional image.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	if _, err := h.deckRepo.GetByID(r.Context(), deckID); err != nil {
		handleLookupError(w, r, err, "Deck not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	question := r.FormValue("question")
	answer := r.FormValue("answer")
	if question == "" || answer == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Question and answer are required", r))
		return
	}

	imageURL, ok := h.saveUploadedImage(w, r)
	if !ok {
		return
	}

	card := &models.Flashcard{
		DeckID:   deckID,
		Question: question,
		Answer:   answer,
		ImageURL: imageURL,
	}

	if err := h.flashRepo.Create(r.Context(), card); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create flashcard", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Flashcard created",
		"flashcard": card,
	})
}

func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid flashcard ID", r))
		return
	}

	card, err := h.flashRepo.GetByID(r.Context(), id)
	if err != nil {
		handleLookupError(w, r, err, "Flashcard not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	if q := r.FormValue("question"); q != "" {
		card.Question = q
	}
	if a := r.FormValue("answer"); a != "" {
		card.Answer = a
	}

	imageURL, ok := h.saveUploadedImage(w, r)
	if !ok {
		return
	}
	if imageURL != nil {
		card.ImageURL = imageURL
	}

	if err := h.flashRepo.Update(r.Context(), card); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update flashcard", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Flashcard updated",
		"flashcard": card,
	})
}

func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid flashcard ID", r))
		return
	}

	if _, err := h.flashRepo.GetByID(r.Context(), id); err != nil {
		handleLookupError(w, r, err, "Flashcard not found")
		return
	}

	if err := h.flashRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete flashcard", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Flashcard deleted"})
}

// CopyToDeck clones a set of flashcards into a target deck.
func (h *FlashcardHandler) CopyToDeck(w http.ResponseWriter, r *http.Request) {
	targetDeckID, err := uuid.Parse(chi.URLParam(r, "targetDeckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid target deck ID", r))
		return
	}

	var req models.CopyFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.FlashcardIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "flashcard_ids must be a non-empty array", r))
		return
	}

	targetDeck, err := h.deckRepo.GetByID(r.Context(), targetDeckID)
	if err != nil {
		handleLookupError(w, r, err, "Target deck not found")
		return
	}

	cards, err := h.flashRepo.ListByIDs(r.Context(), req.FlashcardIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch flashcards", r))
		return
	}

	// All requested cards must exist or nothing is copied
	if len(cards) != len(req.FlashcardIDs) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Some flashcards were not found; nothing was copied", r))
		return
	}

	count, err := h.flashRepo.CopyToDeck(r.Context(), targetDeckID, cards)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to copy flashcards", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Flashcards copied to deck " + targetDeck.Name,
		"count":   count,
	})
}

// MoveToDeck repoints flashcards at a target deck, skipping cards already there.
func (h *FlashcardHandler) MoveToDeck(w http.ResponseWriter, r *http.Request) {
	var req models.MoveFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.TargetDeckID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "target_deck_id is required", r))
		return
	}
	if len(req.FlashcardIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "flashcard_ids must be a non-empty array", r))
		return
	}

	if _, err := h.deckRepo.GetByID(r.Context(), req.TargetDeckID); err != nil {
		handleLookupError(w, r, err, "Target deck not found")
		return
	}

	cards, err := h.flashRepo.ListByIDs(r.Context(), req.FlashcardIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch flashcards", r))
		return
	}

	if len(cards) != len(req.FlashcardIDs) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Some flashcards were not found; nothing was moved", r))
		return
	}

	// Only move cards that are not already in the target deck
	var toMove []uuid.UUID
	for _, c := range cards {
		if c.DeckID != req.TargetDeckID {
			toMove = append(toMove, c.ID)
		}
	}

	moved := 0
	if len(toMove) > 0 {
		moved, err = h.flashRepo.MoveToDeck(r.Context(), req.TargetDeckID, toMove)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to move flashcards", r))
			return
		}
	}

	writeJSON(w, http.StatusOK, models.MoveFlashcardsResult{
		MovedCount:      moved,
		AlreadyInTarget: len(req.FlashcardIDs) - len(toMove),
		TotalSelected:   len(req.FlashcardIDs),
	})
}

// saveUploadedImage stores the optional "image" form file. A missing file is
// not an error; a rejected file writes the response and returns ok=false.
func (h *FlashcardHandler) saveUploadedImage(w http.ResponseWriter, r *http.Request) (*string, bool) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, true
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid image upload", r))
		return nil, false
	}
	defer file.Close()

	url, err := h.uploads.SaveImage(file, header)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
		return nil, false
	}
	return &url, true
}
