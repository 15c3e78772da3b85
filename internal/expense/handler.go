package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for expense operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	// Group-based listing and record access
	r.Get("/group/{groupId}", h.ListByGroup)
	r.Get("/group/{groupId}/{id}", h.GetByID)
	r.Delete("/group/{groupId}/{id}", h.Delete)

	return r
}

// Create handles POST /expenses
// @Summary      Create a new expense
// @Description  Create an expense with automatic split calculation using EVEN, EXACT, or PERCENTAGE strategy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}

	rec, synced, err := h.service.CreateExpense(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			response.ValidationFailed(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create expense")
		return
	}

	response.JSON(w, http.StatusCreated, ToResponse(rec, synced))
}

// ListByGroup handles GET /expenses/group/{groupId}
// @Summary      List group expenses
// @Description  List all expenses for a group, newest first
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")

	records, err := h.service.ListExpenses(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to list expenses")
		return
	}

	resp := make([]*ExpenseResponse, len(records))
	for i, rec := range records {
		resp[i] = ToResponse(rec, !h.service.Unsynced(r.Context(), groupID, rec.ID))
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetByID handles GET /expenses/group/{groupId}/{id}
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/group/{groupId}/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	id := chi.URLParam(r, "id")

	rec, err := h.service.GetExpense(r.Context(), groupID, id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			response.NotFound(w, "Expense not found")
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	response.JSON(w, http.StatusOK, ToResponse(rec, !h.service.Unsynced(r.Context(), groupID, id)))
}

// Delete handles DELETE /expenses/group/{groupId}/{id}
// @Summary      Delete an expense
// @Description  Delete an expense and recompute the group's balances
// @Tags         expenses
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/group/{groupId}/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteExpense(r.Context(), groupID, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			response.NotFound(w, "Expense not found")
			return
		}
		response.InternalError(w, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"deleted": id})
}
