package html

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/quote"
)

func TestForm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("Mostrador").Form(&buf))
	require.Contains(t, buf.String(), `name="archivo"`)
	require.Contains(t, buf.String(), `placeholder="Mostrador"`)
}

func TestResult(t *testing.T) {
	q := quote.Quote{
		ClientName: "<b>Escuela</b>",
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		Lines: []quote.Line{
			{RequestedCode: "A1", MatchKind: catalog.Exact, MatchedCode: "A1", Description: "Corchete", Quantity: 3, UnitPrice: 10000, Subtotal: 30000},
			{RequestedCode: "A11", MatchKind: catalog.Approximate, MatchedCode: "A1", Description: "Corchete", Quantity: 1, UnitPrice: 10000, Subtotal: 10000},
			{RequestedCode: "ZZ", MatchKind: catalog.NotFound, MatchedCode: "ZZ", Quantity: 2},
		},
		Total: 40000,
	}
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("").Result(&buf, q))
	out := buf.String()

	require.Contains(t, out, "Total general: $400")
	require.Contains(t, out, "Aproximada (solicitado: A11)")
	require.Contains(t, out, "NO ENCONTRADO")
	require.Contains(t, out, `class="not_found"`)
	require.Contains(t, out, "1 código(s) no se encontraron")
	require.Contains(t, out, "&lt;b&gt;Escuela&lt;/b&gt;")
	require.Contains(t, out, "2025-01-02 03:04")
}
