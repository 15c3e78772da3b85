package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/pkg/response"
)

// Handler handles HTTP requests for receipt parsing.
type Handler struct {
	service *Service
}

// NewHandler creates a new receipt handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for receipt endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/parse", h.ParseText)
	r.Post("/scan", h.ParseImage)

	return r
}

// ParseTextRequest carries raw recognized receipt text.
type ParseTextRequest struct {
	Text string `json:"text"`
}

// ParseText handles POST /receipts/parse
// @Summary      Parse recognized receipt text
// @Description  Extract items, tax, and total from raw receipt text; falls back to the formatter model when direct parsing finds nothing
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body ParseTextRequest true "Raw receipt text"
// @Success      200 {object} response.APIResponse{data=Parsed}
// @Router       /receipts/parse [post]
func (h *Handler) ParseText(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	response.JSON(w, http.StatusOK, h.service.ParseText(r.Context(), req.Text))
}

// ParseImage handles POST /receipts/scan
// @Summary      Parse a receipt image
// @Description  Run text recognition on the uploaded image and parse the result; extraction failures return an empty item list for manual completion
// @Tags         receipts
// @Accept       octet-stream
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Parsed}
// @Router       /receipts/scan [post]
func (h *Handler) ParseImage(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(r.Body)
	if err != nil || len(image) == 0 {
		response.BadRequest(w, "Image body required")
		return
	}

	parsed, err := h.service.ParseImage(r.Context(), image)
	if err != nil && !errors.Is(err, ErrExtraction) {
		response.InternalError(w, "Failed to parse receipt")
		return
	}
	// An extraction failure still answers 200 with empty items: the user
	// completes the form manually instead of being blocked.
	response.JSON(w, http.StatusOK, parsed)
}
