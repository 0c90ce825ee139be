package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/coach"
	"jobprep-backend/internal/shared/server/middleware"
	"jobprep-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.POST("/resumes/upload", h.upload)
	rg.POST("/resumes/generate", h.generate)
	rg.POST("/resumes/:id/feedback", h.feedback)
}

type resumeResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	OriginalText string `json:"original_text"`
}

func toResponse(r Resume) resumeResponse {
	return resumeResponse{ID: r.ID, UserID: r.UserID, OriginalText: r.OriginalText}
}

func (h *Handler) list(c *gin.Context) {
	userID, filtered, ok := respond.QueryID(c, "user_id")
	if !ok {
		return
	}
	var (
		list []Resume
		err  error
	)
	if filtered {
		c.Set(middleware.UserIDKey, userID)
		list, err = h.Svc.ListByUser(c.Request.Context(), userID)
	} else {
		list, err = h.Svc.List(c.Request.Context())
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	out := make([]resumeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r))
	}
	respond.OK(c, out)
}

type createRequest struct {
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	Text   string `json:"text" binding:"required,notblank"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set(middleware.UserIDKey, req.UserID)

	resume, err := h.Svc.Upload(c.Request.Context(), req.UserID, req.Text)
	if err != nil {
		h.fail(c, err, "failed to save resume")
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.OK(c, toResponse(resume))
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	userID, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("user_id")), 10, 64)
	if err != nil || userID <= 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "user_id must be a positive integer")
		return
	}
	c.Set(middleware.UserIDKey, userID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file exceeds 10MB")
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "unable to read file")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "unable to read file")
		return
	}

	resume, err := h.Svc.UploadFile(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		h.fail(c, err, "failed to save resume")
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.OK(c, toResponse(resume))
}

type feedbackResponse struct {
	EditedText string `json:"edited_text"`
	Feedback   string `json:"feedback"`
}

func (h *Handler) feedback(c *gin.Context) {
	id, ok := respond.IDParam(c, "id")
	if !ok {
		return
	}
	c.Set(middleware.ResumeIDKey, id)

	resume, err := h.Svc.Feedback(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "resume feedback failed")
		return
	}
	respond.OK(c, feedbackResponse{EditedText: *resume.EditedText, Feedback: *resume.Feedback})
}

type generateRequest struct {
	Name            string `json:"name" binding:"required,notblank"`
	Role            string `json:"role" binding:"required,notblank"`
	ExperienceYears *int   `json:"experience_years" binding:"required,gte=0"`
	ExperienceList  string `json:"experience_list" binding:"required,notblank"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	text, err := h.Svc.Generate(c.Request.Context(), coach.GenerateResumeInput{
		Name:            req.Name,
		Role:            req.Role,
		ExperienceYears: *req.ExperienceYears,
		ExperienceList:  req.ExperienceList,
	})
	if err != nil {
		h.fail(c, err, "resume generation failed")
		return
	}
	respond.OK(c, gin.H{"generated_text": text})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "Resume not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, fallback+": "+err.Error())
	}
}
