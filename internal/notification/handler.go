package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for the activity feed.
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for notification endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// ListByGroup handles GET /notifications/group/{groupId}
// @Summary      Get a group's activity feed
// @Description  Balance-change events recorded for the group, oldest first
// @Tags         notifications
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]Event}
// @Router       /notifications/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.ListByGroup(chi.URLParam(r, "groupId")))
}
