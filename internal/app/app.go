package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autocotizar/go_backend/internal/app/batch"
	"autocotizar/go_backend/internal/app/config"
	apphttp "autocotizar/go_backend/internal/app/http"
	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/quote"
	pdfgen "autocotizar/go_backend/internal/domain/quote/pdf/gofpdf"
	"autocotizar/go_backend/internal/infra/register"
)

// Run executes the command line and exits non-zero on failure.
func Run() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newIssuer(cfg config.Config) *batch.Issuer {
	return &batch.Issuer{
		CatalogPath: cfg.CatalogPath,
		OutputDir:   cfg.OutputDir,
		Builder:     quote.NewBuilder(catalog.NewMatcher(cfg.MatchThreshold)),
		Generator:   &pdfgen.Generator{FontDir: cfg.FontDir, Footer: "Auto Cotización"},
		Register:    register.New(cfg.RegisterPath),
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	router := apphttp.NewRouter(cfg, newIssuer(cfg))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !cfg.CatalogExists() {
		log.Printf("server: price list not found yet path=%q", cfg.CatalogPath)
	}
	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Printf("using price list %s", cfg.CatalogPath)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Printf("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
