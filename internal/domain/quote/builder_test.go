package quote

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/money"
)

func testBuilder() *Builder {
	b := NewBuilder(catalog.Matcher{})
	b.Now = func() time.Time { return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC) }
	return b
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.Entry{Code: "A1", Description: "Corchete", Brand: "Rhein", Category: "CORCHETE 26/6", UnitPrice: 10000},
		catalog.Entry{Code: "B7", Description: "Libreta", UnitPrice: 1995},
	)
}

func TestBuildExactLine(t *testing.T) {
	q, err := testBuilder().Build("Colegio Central", []RequestedLine{{Code: "A1", Quantity: 3}}, testCatalog())
	require.NoError(t, err)
	require.Len(t, q.Lines, 1)

	l := q.Lines[0]
	require.Equal(t, catalog.Exact, l.MatchKind)
	require.Equal(t, "A1", l.MatchedCode)
	require.Equal(t, "Rhein", l.Brand)
	require.Equal(t, money.Money(30000), l.Subtotal)
	require.Equal(t, money.Money(30000), q.Total)
	require.Equal(t, StatusPending, q.Status)
	require.Equal(t, "Colegio Central", q.ClientName)
	require.NotEmpty(t, q.ID)
	require.Equal(t, 2025, q.CreatedAt.Year())
}

func TestBuildApproximateLine(t *testing.T) {
	q, err := testBuilder().Build("c", []RequestedLine{{Code: "A11", Quantity: 2}}, testCatalog())
	require.NoError(t, err)
	l := q.Lines[0]
	require.Equal(t, catalog.Approximate, l.MatchKind)
	require.Equal(t, "A1", l.MatchedCode)
	require.Equal(t, "A11", l.RequestedCode)
	require.Equal(t, money.Money(20000), l.Subtotal)
}

func TestBuildNotFoundLineIsKept(t *testing.T) {
	q, err := testBuilder().Build("c", []RequestedLine{
		{Code: "ZZZZ", Quantity: 1},
		{Code: "B7", Quantity: 3},
	}, testCatalog())
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)

	nf := q.Lines[0]
	require.Equal(t, catalog.NotFound, nf.MatchKind)
	require.Equal(t, "ZZZZ", nf.MatchedCode)
	require.Zero(t, nf.Subtotal)
	require.Zero(t, nf.UnitPrice)
	require.Equal(t, 1, nf.Quantity)

	require.Equal(t, money.Money(5985), q.Total)
	require.Equal(t, 1, q.Unmatched())
	require.True(t, q.HasUnmatched())
	require.Equal(t, "ZZZZx1;B7x3", q.Summary())
}

func TestBuildTotalIsSumOfSubtotals(t *testing.T) {
	lines := make([]RequestedLine, 0, 300)
	for i := 1; i <= 300; i++ {
		code := "A1"
		if i%3 == 0 {
			code = "B7"
		} else if i%7 == 0 {
			code = "NOPE-NOPE"
		}
		lines = append(lines, RequestedLine{Code: code, Quantity: i})
	}
	q, err := testBuilder().Build("c", lines, testCatalog())
	require.NoError(t, err)

	var sum money.Money
	for i, l := range q.Lines {
		require.Equal(t, lines[i].Quantity, l.Quantity, "order preserved")
		if l.Found() {
			require.Equal(t, int64(l.UnitPrice)*int64(l.Quantity), int64(l.Subtotal))
		} else {
			require.Zero(t, l.Subtotal)
		}
		sum += l.Subtotal
	}
	require.Equal(t, sum, q.Total)
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		client string
		lines  []RequestedLine
	}{
		{"no lines", "c", nil},
		{"blank client", "   ", []RequestedLine{{Code: "A1", Quantity: 1}}},
		{"zero quantity", "c", []RequestedLine{{Code: "A1", Quantity: 0}}},
		{"negative quantity", "c", []RequestedLine{{Code: "A1", Quantity: 1}, {Code: "B7", Quantity: -2}}},
		{"quantity above maximum", "c", []RequestedLine{{Code: "A1", Quantity: MaxQuantity + 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testBuilder().Build(tt.client, tt.lines, testCatalog())
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
		})
	}
}

func TestBuildRejectsSubtotalOverflow(t *testing.T) {
	c := catalog.New(catalog.Entry{Code: "A1", UnitPrice: money.Money(math.MaxInt64 / 2)})
	_, err := testBuilder().Build("c", []RequestedLine{{Code: "A1", Quantity: 3}}, c)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	require.ErrorIs(t, err, money.ErrOverflow)
}

func TestBuildRejectsTotalOverflow(t *testing.T) {
	c := catalog.New(catalog.Entry{Code: "A1", UnitPrice: money.Money(math.MaxInt64/2 + 1)})
	_, err := testBuilder().Build("c", []RequestedLine{
		{Code: "A1", Quantity: 1},
		{Code: "A1", Quantity: 1},
	}, c)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	require.ErrorIs(t, err, money.ErrOverflow)
}

func TestBuildLargeOrderStaysExact(t *testing.T) {
	c := catalog.New(catalog.Entry{Code: "A1", UnitPrice: 1_000_000_000})
	q, err := testBuilder().Build("c", []RequestedLine{{Code: "A1", Quantity: MaxQuantity}}, c)
	require.NoError(t, err)
	require.Equal(t, money.Money(1_000_000_000*int64(MaxQuantity)), q.Total)
	require.Positive(t, int64(q.Total))
}

func TestBuildIDsAreFresh(t *testing.T) {
	b := testBuilder()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		q, err := b.Build("c", []RequestedLine{{Code: "A1", Quantity: 1}}, testCatalog())
		require.NoError(t, err)
		require.False(t, seen[q.ID])
		seen[q.ID] = true
	}
}

func TestBuildNilCatalog(t *testing.T) {
	_, err := testBuilder().Build("c", []RequestedLine{{Code: "A1", Quantity: 1}}, nil)
	require.Error(t, err)
}
