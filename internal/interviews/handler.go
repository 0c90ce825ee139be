package interviews

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/shared/server/middleware"
	"jobprep-backend/internal/shared/server/respond"
	"jobprep-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interviews/questions", h.generateQuestions)
	rg.GET("/interviews/questions", h.listQuestions)
	rg.POST("/interviews/answers", h.createAnswer)
	rg.POST("/interviews/evaluate/:answer_id", h.evaluate)
}

type questionsRequest struct {
	UserID  int64  `json:"user_id" binding:"required,gt=0"`
	Company string `json:"company" binding:"required,notblank"`
	Role    string `json:"role" binding:"required,notblank"`
}

func (h *Handler) generateQuestions(c *gin.Context) {
	var req questionsRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set(middleware.UserIDKey, req.UserID)

	questions, err := h.Svc.GenerateQuestions(c.Request.Context(), req.UserID, req.Company, req.Role)
	if err != nil {
		h.fail(c, err, "question generation failed")
		return
	}
	texts := make([]string, 0, len(questions))
	for _, q := range questions {
		texts = append(texts, q.QuestionText)
	}
	respond.OK(c, gin.H{"questions": texts})
}

type questionResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Company      string `json:"company"`
	Role         string `json:"role"`
	QuestionText string `json:"question_text"`
}

func (h *Handler) listQuestions(c *gin.Context) {
	userID, present, ok := respond.QueryID(c, "user_id")
	if !ok {
		return
	}
	if !present {
		respond.Error(c, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	c.Set(middleware.UserIDKey, userID)

	questions, err := h.Svc.ListQuestions(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "failed to list questions")
		return
	}
	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionResponse{ID: q.ID, UserID: q.UserID, Company: q.Company, Role: q.Role, QuestionText: q.QuestionText})
	}
	respond.OK(c, out)
}

type answerRequest struct {
	QuestionID int64  `json:"question_id" binding:"required,gt=0"`
	AnswerText string `json:"answer_text" binding:"required,notblank"`
}

func (h *Handler) createAnswer(c *gin.Context) {
	var req answerRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set(middleware.QuestionIDKey, req.QuestionID)

	answer, err := h.Svc.CreateAnswer(c.Request.Context(), req.QuestionID, req.AnswerText)
	if err != nil {
		h.fail(c, err, "failed to save answer")
		return
	}
	c.Set(middleware.AnswerIDKey, answer.ID)
	respond.OK(c, gin.H{"id": answer.ID})
}

func (h *Handler) evaluate(c *gin.Context) {
	id, ok := respond.IDParam(c, "answer_id")
	if !ok {
		return
	}
	c.Set(middleware.AnswerIDKey, id)

	answer, err := h.Svc.Evaluate(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "evaluation failed")
		return
	}
	respond.OK(c, gin.H{"score": *answer.Score, "feedback": *answer.Feedback})
}

func (h *Handler) fail(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, ErrQuestionNotFound):
		respond.Error(c, http.StatusNotFound, "Question not found")
	case errors.Is(err, ErrAnswerNotFound):
		respond.Error(c, http.StatusNotFound, "Answer not found")
	case errors.Is(err, users.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrCoach):
		respond.Error(c, http.StatusInternalServerError, operation+": "+strings.TrimPrefix(err.Error(), ErrCoach.Error()+": "))
	default:
		respond.Error(c, http.StatusInternalServerError, operation+": "+err.Error())
	}
}
