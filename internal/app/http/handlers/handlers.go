package handlers

import (
	"autocotizar/go_backend/internal/app/batch"
	"autocotizar/go_backend/internal/app/config"
	"autocotizar/go_backend/internal/domain/quote"
	"autocotizar/go_backend/internal/domain/quote/html"
)

// Handlers share no mutable state across requests: the price list is
// re-read per request and the register serializes its own appends.
type Handlers struct {
	Cfg     config.Config
	Builder *quote.Builder
	Issuer  *batch.Issuer
	Pages   *html.Renderer
}

func New(cfg config.Config, issuer *batch.Issuer) *Handlers {
	return &Handlers{
		Cfg:     cfg,
		Builder: issuer.Builder,
		Issuer:  issuer,
		Pages:   html.NewRenderer(cfg.DefaultClient),
	}
}
