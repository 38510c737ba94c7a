package quote

import (
	"strconv"
	"strings"
	"time"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/money"
)

const StatusPending = "pendiente"

type RequestedLine struct {
	Code     string `json:"code"`
	Quantity int    `json:"qty"`
}

type Quote struct {
	ID         string
	ClientName string
	CreatedAt  time.Time
	Lines      []Line
	Total      money.Money
	OutputPath string
	Status     string
}

type Line struct {
	RequestedCode string
	MatchKind     catalog.MatchKind
	MatchedCode   string
	Description   string
	Brand         string
	Category      string
	UnitPrice     money.Money
	Quantity      int
	Subtotal      money.Money
	ImagePath     string
}

func (l Line) Found() bool { return l.MatchKind != catalog.NotFound }

// Unmatched counts lines whose code was not found in the price list.
func (q Quote) Unmatched() int {
	n := 0
	for _, l := range q.Lines {
		if !l.Found() {
			n++
		}
	}
	return n
}

func (q Quote) HasUnmatched() bool { return q.Unmatched() > 0 }

func (q Quote) Approximated() int {
	n := 0
	for _, l := range q.Lines {
		if l.MatchKind == catalog.Approximate {
			n++
		}
	}
	return n
}

// Summary is the "CODExQTY;CODExQTY" form kept in the register.
func (q Quote) Summary() string {
	parts := make([]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		parts = append(parts, l.MatchedCode+"x"+strconv.Itoa(l.Quantity))
	}
	return strings.Join(parts, ";")
}
