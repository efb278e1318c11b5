package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/repository"
)

type DeckHandler struct {
	deckRepo *repository.DeckRepo
}

func NewDeckHandler(deckRepo *repository.DeckRepo) *DeckHandler {
	return &DeckHandler{deckRepo: deckRepo}
}

func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Name == "" || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Deck name and category are required", r))
		return
	}

	deck := &models.Deck{
		UserID:   middleware.GetUserID(r.Context()),
		Name:     req.Name,
		Category: req.Category,
	}

	if err := h.deckRepo.Create(r.Context(), deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"deck": deck})
}

// List returns the caller's decks with per-deck mastery progress.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	decks, err := h.deckRepo.ListByUserWithProgress(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch decks", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": decks})
}

func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	deck, ok := h.ownedDeck(w, r, id)
	if !ok {
		return
	}

	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Name != "" {
		deck.Name = req.Name
	}
	if req.Category != "" {
		deck.Category = req.Category
	}

	if err := h.deckRepo.Update(r.Context(), deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update deck", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"deck": deck})
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	if _, ok := h.ownedDeck(w, r, id); !ok {
		return
	}

	if err := h.deckRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}

// ownedDeck loads the deck and enforces ownership, writing the error
// response itself when the check fails.
func (h *DeckHandler) ownedDeck(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*models.Deck, bool) {
	deck, err := h.deckRepo.GetByID(r.Context(), id)
	if err != nil {
		handleLookupError(w, r, err, "Deck not found")
		return nil, false
	}

	if deck.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return nil, false
	}
	return deck, true
}
