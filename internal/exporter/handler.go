package exporter

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobprep-backend/internal/shared/server/middleware"
	"jobprep-backend/internal/shared/server/respond"
	"jobprep-backend/internal/shared/telemetry"
	"jobprep-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, f := range []Format{FormatDOCX, FormatPDF} {
		rg.GET("/exporter/:user_id/"+string(f), h.export(f))
		rg.GET("/exporter/download/"+string(f)+"/:filename", h.download(f))
	}
}

func (h *Handler) export(f Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := respond.IDParam(c, "user_id")
		if !ok {
			return
		}
		c.Set(middleware.UserIDKey, userID)

		out, err := h.Svc.Export(c.Request.Context(), userID, f)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "User not found")
				return
			}
			respond.Error(c, http.StatusInternalServerError, fmt.Sprintf("%s export failed: %v", f, err))
			return
		}
		respond.OK(c, out)
	}
}

func (h *Handler) download(f Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")
		reader, err := h.Svc.Open(c.Request.Context(), f, name)
		if err != nil {
			if errors.Is(err, ErrFileNotFound) {
				respond.Error(c, http.StatusNotFound, "File not found")
				return
			}
			respond.Error(c, http.StatusInternalServerError, "failed to open file")
			return
		}
		defer reader.Close()

		c.Header("Content-Type", f.ContentType())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, reader); err != nil {
			telemetry.Warn("export.download_interrupted", map[string]any{
				"file":  name,
				"error": err,
			})
		}
	}
}
