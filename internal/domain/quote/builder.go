package quote

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/money"
)

// MaxQuantity is the largest quantity accepted on a single line.
const MaxQuantity = math.MaxInt32

func (l RequestedLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Quantity,
			validation.Required.Error("must be a positive integer"),
			validation.Min(1).Error("must be a positive integer"),
			validation.Max(MaxQuantity).Error(fmt.Sprintf("must not exceed %d", MaxQuantity)),
		),
	)
}

type buildRequest struct {
	Client string          `json:"client"`
	Lines  []RequestedLine `json:"lines"`
}

func (r buildRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Client, validation.Required.Error("client name is required")),
		validation.Field(&r.Lines, validation.Required.Error("at least one line is required")),
	)
}

// Builder prices requested lines against a catalog.
type Builder struct {
	Matcher catalog.Matcher
	Now     func() time.Time
	NewID   func() string
}

func NewBuilder(m catalog.Matcher) *Builder {
	return &Builder{
		Matcher: m,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

// Build keeps the input order. Codes missing from the catalog become
// not-found lines with a zero subtotal instead of failing the quote.
func (b *Builder) Build(client string, lines []RequestedLine, c *catalog.Catalog) (Quote, error) {
	if c == nil {
		return Quote{}, errors.New("quote: nil catalog")
	}
	req := buildRequest{Client: strings.TrimSpace(client), Lines: lines}
	if err := req.Validate(); err != nil {
		return Quote{}, &ValidationError{Err: err}
	}

	q := Quote{
		ID:         b.newID(),
		ClientName: req.Client,
		CreatedAt:  b.now(),
		Lines:      make([]Line, 0, len(lines)),
		Status:     StatusPending,
	}
	var total money.Money
	for i, rl := range lines {
		line, err := b.price(rl, c)
		if err != nil {
			return Quote{}, &ValidationError{Err: fmt.Errorf("line %d (%s): %w", i+1, rl.Code, err)}
		}
		if total, err = total.Add(line.Subtotal); err != nil {
			return Quote{}, &ValidationError{Err: fmt.Errorf("total: %w", err)}
		}
		q.Lines = append(q.Lines, line)
	}
	q.Total = total
	return q, nil
}

func (b *Builder) price(rl RequestedLine, c *catalog.Catalog) (Line, error) {
	res := b.Matcher.Match(rl.Code, c)
	line := Line{
		RequestedCode: res.RequestedCode,
		MatchKind:     res.Kind,
		MatchedCode:   res.MatchedCode,
		Quantity:      rl.Quantity,
	}
	if !res.Found() {
		return line, nil
	}
	e := res.Entry
	line.Description = e.Description
	line.Brand = e.Brand
	line.Category = e.Category
	line.UnitPrice = e.UnitPrice
	sub, err := e.UnitPrice.Mul(rl.Quantity)
	if err != nil {
		return Line{}, err
	}
	line.Subtotal = sub
	return line, nil
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}
