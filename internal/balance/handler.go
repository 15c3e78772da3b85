package balance

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/pkg/response"
)

// SnapshotProvider supplies the current derived state for a group. The
// expense service implements it.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, groupID string) (Snapshot, error)
}

// Handler handles HTTP requests for balance and owe-statement queries.
type Handler struct {
	provider SnapshotProvider
}

// NewHandler creates a new balance handler.
func NewHandler(provider SnapshotProvider) *Handler {
	return &Handler{provider: provider}
}

// Routes returns the router for balance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GetBalances)
	r.Get("/group/{groupId}/statements", h.GetStatements)

	return r
}

// NetBalanceResponse is one participant's net position, rounded to cents.
type NetBalanceResponse struct {
	Participant string  `json:"participant"`
	Amount      float64 `json:"amount"` // positive = is owed, negative = owes
}

// OweStatementResponse is one directional debt, rounded to cents.
type OweStatementResponse struct {
	Debtor   string  `json:"debtor"`
	Creditor string  `json:"creditor"`
	Amount   float64 `json:"amount"`
	Message  string  `json:"message"`
}

// GetBalances handles GET /balances/group/{groupId}
// @Summary      Get group net balances
// @Description  Net signed position per participant; the amounts always sum to zero
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]NetBalanceResponse}
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	snap, err := h.provider.Snapshot(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	resp := make([]*NetBalanceResponse, len(snap.Balances))
	for i, b := range snap.Balances {
		resp[i] = &NetBalanceResponse{
			Participant: string(b.Participant),
			Amount:      b.Amount.Round(2).InexactFloat64(),
		}
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetStatements handles GET /balances/group/{groupId}/statements
// @Summary      Get group owe statements
// @Description  Netted "who owes whom" statements; settled pairs are omitted
// @Tags         balances
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]OweStatementResponse}
// @Router       /balances/group/{groupId}/statements [get]
func (h *Handler) GetStatements(w http.ResponseWriter, r *http.Request) {
	snap, err := h.provider.Snapshot(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		response.InternalError(w, "Failed to compute statements")
		return
	}

	resp := make([]*OweStatementResponse, len(snap.Statements))
	for i, s := range snap.Statements {
		resp[i] = &OweStatementResponse{
			Debtor:   string(s.Debtor),
			Creditor: string(s.Creditor),
			Amount:   s.Amount.Round(2).InexactFloat64(),
			Message:  s.String(),
		}
	}
	response.JSON(w, http.StatusOK, resp)
}
