// Package register keeps the append-only CSV log of issued quotes.
package register

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"autocotizar/go_backend/internal/domain/quote"
)

var Header = []string{"quote_id", "fecha", "cliente", "productos", "total", "archivo_pdf", "estado"}

const lockRetryDelay = 50 * time.Millisecond

type Row struct {
	QuoteID    string
	Date       string
	Client     string
	Products   string
	Total      string
	OutputPath string
	Status     string
}

type Receipt struct {
	QuoteID string
	Path    string
}

// Register appends one row per quote. Rows already written are never
// touched. Appends are serialized within the process by a mutex and across
// processes by an exclusive lock on "<path>.lock".
type Register struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

func New(path string) *Register {
	return &Register{path: path, lock: flock.New(path + ".lock")}
}

func (r *Register) Path() string { return r.path }

func (r *Register) Record(ctx context.Context, q quote.Quote) (Receipt, error) {
	if q.ID == "" {
		return Receipt{}, errors.New("register: quote has no id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return Receipt{}, fmt.Errorf("register: lock %s: %w", r.path, err)
	}
	if !locked {
		return Receipt{}, fmt.Errorf("register: lock %s: not acquired", r.path)
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			log.Printf("register: unlock failed path=%s err=%v", r.path, err)
		}
	}()

	if err := r.append(toRecord(q)); err != nil {
		return Receipt{}, err
	}
	return Receipt{QuoteID: q.ID, Path: r.path}, nil
}

func (r *Register) append(record []string) error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("register: open %s: %w", r.path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("register: stat %s: %w", r.path, err)
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("register: write header: %w", err)
		}
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("register: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("register: flush: %w", err)
	}
	return f.Sync()
}

func toRecord(q quote.Quote) []string {
	return []string{
		q.ID,
		q.CreatedAt.Format(time.RFC3339),
		q.ClientName,
		q.Summary(),
		q.Total.Plain(),
		q.OutputPath,
		q.Status,
	}
}

// ReadAll returns every row of the register at path, oldest first. A missing
// file is an empty register.
func ReadAll(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func Read(in io.Reader) ([]Row, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = len(Header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("register: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			QuoteID:    rec[0],
			Date:       rec[1],
			Client:     rec[2],
			Products:   rec[3],
			Total:      rec[4],
			OutputPath: rec[5],
			Status:     rec[6],
		})
	}
	return rows, nil
}
