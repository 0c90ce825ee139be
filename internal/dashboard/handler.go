package dashboard

import (
	"errors"
	"net/http"

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
	rg.GET("/dashboard/:user_id", h.get)
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := respond.IDParam(c, "user_id")
	if !ok {
		return
	}
	c.Set(middleware.UserIDKey, userID)

	summary, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	respond.OK(c, summary)
}
