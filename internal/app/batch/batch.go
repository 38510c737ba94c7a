// Package batch issues quotes as PDF documents and records them in the
// quote register.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/quote"
	"autocotizar/go_backend/internal/domain/quote/pdf"
	"autocotizar/go_backend/internal/infra/register"
	"autocotizar/go_backend/internal/observability"
)

type Recorder interface {
	Record(ctx context.Context, q quote.Quote) (register.Receipt, error)
}

type Request struct {
	Client string
	Items  []quote.RequestedLine
	// Images maps a requested code to a product picture path.
	Images map[string]string
	// OutputPath overrides the generated PDF file name.
	OutputPath   string
	SkipRegister bool
}

type Result struct {
	Path    string
	PDF     []byte
	Quote   quote.Quote
	Receipt *register.Receipt
}

type Issuer struct {
	CatalogPath string
	OutputDir   string
	Builder     *quote.Builder
	Generator   pdf.Generator
	Register    Recorder
}

// Issue loads the price list, prices the request, writes the PDF and appends
// the register row. Codes missing from the price list do not abort the quote;
// they are printed as not-found lines and counted in Result.Quote.Unmatched.
func (is *Issuer) Issue(ctx context.Context, req Request) (Result, error) {
	cat, err := catalog.Load(is.CatalogPath)
	if err != nil {
		return Result{}, err
	}
	q, err := is.Builder.Build(req.Client, req.Items, cat)
	if err != nil {
		observability.RejectedRequestsTotal.WithLabelValues("validation").Inc()
		return Result{}, err
	}
	for i := range q.Lines {
		if p, ok := req.Images[q.Lines[i].RequestedCode]; ok {
			q.Lines[i].ImagePath = p
		}
	}

	q.OutputPath = req.OutputPath
	if q.OutputPath == "" {
		q.OutputPath = filepath.Join(is.OutputDir, DefaultFileName(q.ClientName, q.CreatedAt))
	}

	doc, err := is.Generator.Generate(q)
	if err != nil {
		return Result{}, fmt.Errorf("generate pdf: %w", err)
	}
	if dir := filepath.Dir(q.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(q.OutputPath, doc, 0o644); err != nil {
		return Result{}, fmt.Errorf("write pdf: %w", err)
	}

	res := Result{Path: q.OutputPath, PDF: doc, Quote: q}
	if !req.SkipRegister && is.Register != nil {
		rec, err := is.Register.Record(ctx, q)
		if err != nil {
			// A PDF never outlives a missing register row.
			if rmErr := os.Remove(q.OutputPath); rmErr != nil {
				log.Printf("batch: remove unregistered pdf path=%s err=%v", q.OutputPath, rmErr)
			}
			return Result{}, fmt.Errorf("record quote %s: %w", q.ID, err)
		}
		observability.RegisterAppendsTotal.Inc()
		res.Receipt = &rec
	}

	observability.ObserveQuote("batch", q)
	log.Printf("batch: quote issued id=%s client=%q lines=%d approximate=%d unmatched=%d total=%s path=%s",
		q.ID, q.ClientName, len(q.Lines), q.Approximated(), q.Unmatched(), q.Total.Plain(), q.OutputPath)
	return res, nil
}

// DefaultFileName is cotizacion_<client>_<YYYYMMDD_HHMMSS>.pdf with spaces
// and path separators in the client name replaced by underscores.
func DefaultFileName(client string, at time.Time) string {
	name := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(client)
	return fmt.Sprintf("cotizacion_%s_%s.pdf", name, at.Format("20060102_150405"))
}
