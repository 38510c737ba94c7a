package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/quote"
	"autocotizar/go_backend/internal/infra/sheet"
	"autocotizar/go_backend/internal/observability"
)

const uploadField = "archivo"

func (h *Handlers) QuoteForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Pages.Form(w); err != nil {
		log.Printf("quote form: render failed: %v", err)
	}
}

// QuoteUpload prices an uploaded order sheet and answers with an HTML table.
// Nothing is written to disk on this path.
func (h *Handlers) QuoteUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			observability.RejectedRequestsTotal.WithLabelValues("too_large").Inc()
			textError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("El archivo supera el máximo de %d bytes.", tooLarge.Limit))
			return
		}
		observability.RejectedRequestsTotal.WithLabelValues("upload_format").Inc()
		textError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fh, err := r.FormFile(uploadField)
	if err != nil {
		observability.RejectedRequestsTotal.WithLabelValues("upload_missing").Inc()
		textError(w, http.StatusBadRequest, "No se recibió ningún archivo.")
		return
	}
	rows, err := sheet.Read(file, fh.Filename)
	file.Close()
	if err != nil {
		observability.RejectedRequestsTotal.WithLabelValues("upload_format").Inc()
		textError(w, http.StatusBadRequest, fmt.Sprintf("Error al leer el archivo: %v", err))
		return
	}
	lines, err := quote.ParseRequestedLines(rows)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	cat, err := catalog.Load(h.Cfg.CatalogPath)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	client := strings.TrimSpace(r.FormValue("cliente"))
	if client == "" {
		client = h.Cfg.DefaultClient
	}
	q, err := h.Builder.Build(client, lines, cat)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	observability.ObserveQuote("web", q)
	log.Printf("quote: web quote id=%s file=%q lines=%d unmatched=%d total=%s",
		q.ID, fh.Filename, len(q.Lines), q.Unmatched(), q.Total.Plain())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Pages.Result(w, q); err != nil {
		log.Printf("quote: render failed id=%s: %v", q.ID, err)
		textError(w, http.StatusInternalServerError, "render failed")
	}
}
