package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"autocotizar/go_backend/internal/app/batch"
	"autocotizar/go_backend/internal/domain/quote"
)

type CreateQuoteRequest struct {
	Client       string                `json:"client"`
	Items        []quote.RequestedLine `json:"items"`
	Images       map[string]string     `json:"images"`
	SkipRegister bool                  `json:"skip_register"`
}

// CreateQuote is the batch variant over HTTP: it writes the PDF and the
// register row, then returns the PDF.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		textError(w, http.StatusBadRequest, "bad request")
		return
	}

	res, err := h.Issuer.Issue(r.Context(), batch.Request{
		Client:       req.Client,
		Items:        req.Items,
		Images:       req.Images,
		SkipRegister: req.SkipRegister,
	})
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filepath.Base(res.Path)))
	w.Header().Set("X-Quote-Id", res.Quote.ID)
	w.Header().Set("X-Quote-Unmatched", strconv.Itoa(res.Quote.Unmatched()))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PDF)
}
