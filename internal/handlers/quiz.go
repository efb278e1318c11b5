package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"flashdeck-backend/internal/middleware"
	"flashdeck-backend/internal/models"
	"flashdeck-backend/internal/services"
)

type QuizHandler struct {
	quizService    *services.QuizService
	gradingService *services.GradingService
}

func NewQuizHandler(quizService *services.QuizService, gradingService *services.GradingService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		gradingService: gradingService,
	}
}

// Start assembles the multiple-choice question set for a deck.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	deckID, err := uuid.Parse(chi.URLParam(r, "deckID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid deck ID", r))
		return
	}

	quiz, err := h.quizService.BuildQuiz(r.Context(), deckID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

// SubmitAnswer grades a free-text answer and returns updated deck progress.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	flashcardID, err := uuid.Parse(chi.URLParam(r, "flashcardID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid flashcard ID", r))
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	result, err := h.gradingService.GradeAnswer(r.Context(), flashcardID, userID, req.UserAnswer)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
