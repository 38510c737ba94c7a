package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	rows, err := Read(strings.NewReader("CODIGO,CANTIDAD\nA1,3\nB2\n"), "pedido.CSV")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"CODIGO", "CANTIDAD"}, {"A1", "3"}, {"B2"}}, rows)
	require.Equal(t, 2, Width(rows))
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "CODIGO"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "CANTIDAD"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "A1"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 3))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Read(bytes.NewReader(buf.Bytes()), "pedido.xlsx")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"CODIGO", "CANTIDAD"}, {"A1", "3"}}, rows)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(strings.NewReader("not a zip archive"), "pedido.xlsx")
	require.Error(t, err)

	_, err = Read(strings.NewReader(""), "pedido.csv")
	require.ErrorIs(t, err, ErrEmpty)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lista.csv")
	require.NoError(t, os.WriteFile(path, []byte("CODIGO\nA1\n"), 0o644))

	rows, err := Open(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, err = Open(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCellAndBlank(t *testing.T) {
	require.Equal(t, "", Cell([]string{"a"}, 3))
	require.Equal(t, "a", Cell([]string{"a"}, 0))
	require.True(t, Blank([]string{" ", ""}))
	require.False(t, Blank([]string{" ", "x"}))
}
