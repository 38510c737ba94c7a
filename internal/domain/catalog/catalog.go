package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"autocotizar/go_backend/internal/domain/money"
	"autocotizar/go_backend/internal/infra/sheet"
)

// Price list headers, matched after trimming. Code and unit price are required.
const (
	ColCode        = "CODIGO"
	ColUnitPrice   = "PRECIO VENTA LICI 20%"
	ColDescription = "DESCRIPCION"
	ColBrand       = "MARCA"
	ColCategory    = "CATEGORIA"
)

// Headers starting with this marker are spreadsheet helper columns and are ignored.
const reservedMarker = "."

// ErrNotFound is wrapped in a LoadError when the price list file is missing.
// HTTP handlers answer it with 500.
var ErrNotFound = errors.New("price list not found")

// LoadError reports a price list that could not be read or lacks required columns.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("price list: %v", e.Err)
	}
	return fmt.Sprintf("price list %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Entry is one priced product of the price list.
type Entry struct {
	Code        string
	Description string
	Brand       string
	Category    string
	UnitPrice   money.Money
}

// Catalog is an immutable code -> entry table. Safe for concurrent reads.
type Catalog struct {
	entries map[string]Entry
	keys    []string
}

// Load reads the price list at path. The file is re-read on every call.
func Load(path string) (*Catalog, error) {
	rows, err := sheet.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: ErrNotFound}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	c, err := Parse(rows)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Parse builds a catalog from raw rows; the first row holds the headers.
func Parse(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, &LoadError{Err: sheet.ErrEmpty}
	}
	cols := headerIndex(rows[0])

	codeIdx, ok := cols[ColCode]
	if !ok {
		return nil, &LoadError{Err: fmt.Errorf("missing column %q", ColCode)}
	}
	priceIdx, ok := cols[ColUnitPrice]
	if !ok {
		return nil, &LoadError{Err: fmt.Errorf("missing column %q", ColUnitPrice)}
	}
	optional := func(row []string, name string) string {
		if i, ok := cols[name]; ok {
			return strings.TrimSpace(sheet.Cell(row, i))
		}
		return ""
	}

	c := &Catalog{entries: make(map[string]Entry, len(rows)-1)}
	for n, row := range rows[1:] {
		rowNum := n + 2
		code := NormalizeCode(sheet.Cell(row, codeIdx))
		if code == "" {
			continue
		}
		price, err := money.Parse(sheet.Cell(row, priceIdx))
		if err != nil {
			return nil, &LoadError{Err: fmt.Errorf("row %d (%s): price: %w", rowNum, code, err)}
		}
		if price < 0 {
			return nil, &LoadError{Err: fmt.Errorf("row %d (%s): negative price", rowNum, code)}
		}
		if _, dup := c.entries[code]; dup {
			continue
		}
		c.entries[code] = Entry{
			Code:        code,
			Description: optional(row, ColDescription),
			Brand:       optional(row, ColBrand),
			Category:    optional(row, ColCategory),
			UnitPrice:   price,
		}
		c.keys = append(c.keys, code)
	}
	sort.Strings(c.keys)
	return c, nil
}

// headerIndex maps trimmed header names to column positions, skipping blank
// and reserved headers. The first column wins when a header repeats.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" || strings.HasPrefix(name, reservedMarker) {
			continue
		}
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// Lookup finds the entry for an already normalized code.
func (c *Catalog) Lookup(code string) (Entry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

func (c *Catalog) Len() int { return len(c.entries) }

// Codes returns the catalog keys in ascending order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// New builds a catalog from entries directly; later duplicates are ignored.
func New(entries ...Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		e.Code = NormalizeCode(e.Code)
		if e.Code == "" {
			continue
		}
		if _, dup := c.entries[e.Code]; dup {
			continue
		}
		c.entries[e.Code] = e
		c.keys = append(c.keys, e.Code)
	}
	sort.Strings(c.keys)
	return c
}
