package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"autocotizar/go_backend/internal/infra/register"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQuoteAndRegisterCommands(t *testing.T) {
	dir := t.TempDir()
	prices := filepath.Join(dir, "lista.csv")
	items := filepath.Join(dir, "pedido.csv")
	reg := filepath.Join(dir, "registro.csv")
	pdfPath := filepath.Join(dir, "cotizacion.pdf")
	require.NoError(t, os.WriteFile(prices, []byte("CODIGO,PRECIO VENTA LICI 20%\nA1,100\n"), 0o644))
	require.NoError(t, os.WriteFile(items, []byte("codigo,cantidad\nA1,3\nNADA,1\n"), 0o644))

	out, err := runCmd(t, "cotizar",
		"--precios", prices,
		"--registro", reg,
		"--cliente", "Colegio Central",
		"--items", items,
		"--salida", pdfPath,
		"--imagen", "A1="+filepath.Join(dir, "a1.png"))
	require.NoError(t, err, out)
	require.Contains(t, out, "total: $300")
	require.Contains(t, out, "1 código(s) no encontrados")

	_, err = os.Stat(pdfPath)
	require.NoError(t, err)
	rows, err := register.ReadAll(reg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "A1x3;NADAx1", rows[0].Products)

	out, err = runCmd(t, "registro", "--registro", reg)
	require.NoError(t, err)
	require.Contains(t, out, rows[0].QuoteID)
	require.Contains(t, out, "Colegio Central")
}

func TestQuoteCommandRejectsBadItems(t *testing.T) {
	dir := t.TempDir()
	prices := filepath.Join(dir, "lista.csv")
	items := filepath.Join(dir, "pedido.csv")
	reg := filepath.Join(dir, "registro.csv")
	require.NoError(t, os.WriteFile(prices, []byte("CODIGO,PRECIO VENTA LICI 20%\nA1,100\n"), 0o644))
	require.NoError(t, os.WriteFile(items, []byte("codigo,cantidad\nA1,abc\n"), 0o644))

	_, err := runCmd(t, "cotizar", "--precios", prices, "--registro", reg,
		"--cliente", "c", "--items", items, "--salida", filepath.Join(dir, "q.pdf"))
	require.Error(t, err)

	_, statErr := os.Stat(reg)
	require.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "q.pdf"))
	require.True(t, os.IsNotExist(statErr))
}

func TestQuoteCommandRequiresFlags(t *testing.T) {
	_, err := runCmd(t, "cotizar", "--items", "x.csv")
	require.Error(t, err)
}
