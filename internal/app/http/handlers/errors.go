package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/quote"
	"autocotizar/go_backend/internal/observability"
)

func textError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}

// writeQuoteError maps domain errors to plain-text responses: bad input is the
// client's problem (400), a missing or broken price list is ours (500).
func writeQuoteError(w http.ResponseWriter, err error) {
	var (
		ue *quote.UploadFormatError
		ve *quote.ValidationError
		le *catalog.LoadError
	)
	switch {
	case errors.As(err, &ue):
		observability.RejectedRequestsTotal.WithLabelValues("upload_format").Inc()
		textError(w, http.StatusBadRequest, fmt.Sprintf("Error al interpretar códigos y cantidades: %v", ue))
	case errors.As(err, &ve):
		observability.RejectedRequestsTotal.WithLabelValues("validation").Inc()
		textError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, catalog.ErrNotFound) && errors.As(err, &le):
		log.Printf("quote: price list missing path=%s", le.Path)
		textError(w, http.StatusInternalServerError, fmt.Sprintf("Archivo de lista de precios no encontrado: %s", le.Path))
	case errors.As(err, &le):
		log.Printf("quote: price list load failed: %v", le)
		textError(w, http.StatusInternalServerError, fmt.Sprintf("Error al cargar la lista de precios: %v", le.Err))
	default:
		log.Printf("quote: failed: %v", err)
		textError(w, http.StatusInternalServerError, "quote generation failed")
	}
}
