package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/quote"
)

const (
	margin       = 10.0
	imageSize    = 20.0
	maxDescRunes = 90
)

var (
	colWidths = []float64{22, 22, 50, 22, 28, 14, 19, 19}
	colTitles = []string{"Imagen", "Código", "Descripción", "Marca", "Categoría", "Cantidad", "P. Unitario", "Subtotal"}
	rowFills  = [][3]int{{245, 245, 245}, {211, 211, 211}}
)

var months = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
	"agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// Generator renders quotes with gofpdf. With an empty FontDir the core
// Helvetica fonts are used through a cp1252 translator; otherwise
// DejaVuSans.ttf and DejaVuSans-Bold.ttf are loaded from FontDir.
type Generator struct {
	FontDir string
	Footer  string
}

func New() *Generator { return &Generator{} }

type doc struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	family string
}

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", g.FontDir)
	pdf.SetMargins(margin, margin+5, margin)
	pdf.SetAutoPageBreak(false, margin)

	d := doc{pdf: pdf, tr: func(s string) string { return s }, family: "DejaVu"}
	if g.FontDir == "" {
		d.family = "Helvetica"
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		regularFont := "DejaVuSans.ttf"
		boldFont := "DejaVuSans-Bold.ttf"
		log.Printf("quote pdf: load fonts dir=%s regular=%s bold=%s", g.FontDir, regularFont, boldFont)
		// Font files resolve against the directory given to gofpdf.New.
		pdf.AddUTF8Font("DejaVu", "", regularFont)
		pdf.AddUTF8Font("DejaVu", "B", boldFont)
	}
	pdf.SetTitle(d.tr("Cotización de Productos"), false)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	pdf.AddPage()

	pdf.SetFont(d.family, "B", 18)
	pdf.CellFormat(0, 10, d.tr("Cotización de Productos"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(d.family, "", 11)
	d.label("Cliente: ", q.ClientName)
	d.label("Fecha: ", spanishDate(q.CreatedAt))
	d.label("N° de cotización: ", q.ID)
	pdf.Ln(4)

	rowH := 8.0
	for _, l := range q.Lines {
		if imageUsable(l.ImagePath) {
			rowH = imageSize + 2
			break
		}
	}

	d.header()
	for i, l := range q.Lines {
		if d.needsBreak(rowH) {
			pdf.AddPage()
			d.header()
		}
		d.row(i, l, rowH)
	}

	pdf.Ln(4)
	if d.needsBreak(30) {
		pdf.AddPage()
	}
	pdf.SetFont(d.family, "B", 14)
	pdf.CellFormat(0, 8, d.tr("Total general: "+q.Total.String()), "", 1, "L", false, 0, "")
	if n := q.Unmatched(); n > 0 {
		pdf.SetFont(d.family, "", 9)
		pdf.CellFormat(0, 5, d.tr(fmt.Sprintf("%d código(s) no encontrados en la lista de precios.", n)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	d.uses(q)

	pdf.Ln(4)
	pdf.SetFont(d.family, "", 8)
	if g.Footer != "" {
		pdf.CellFormat(0, 4, d.tr(g.Footer), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 4, d.tr("Generado: "+time.Now().Format(time.RFC3339)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("quote pdf: output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d doc) label(name, value string) {
	d.pdf.SetFont(d.family, "B", 11)
	d.pdf.CellFormat(d.pdf.GetStringWidth(d.tr(name))+1, 6, d.tr(name), "", 0, "L", false, 0, "")
	d.pdf.SetFont(d.family, "", 11)
	d.pdf.CellFormat(0, 6, d.tr(value), "", 1, "L", false, 0, "")
}

func (d doc) needsBreak(h float64) bool {
	_, pageH := d.pdf.GetPageSize()
	return d.pdf.GetY()+h > pageH-margin
}

func (d doc) header() {
	d.pdf.SetFont(d.family, "B", 8)
	d.pdf.SetFillColor(0, 51, 102)
	d.pdf.SetTextColor(255, 255, 255)
	for i, title := range colTitles {
		d.pdf.CellFormat(colWidths[i], 8, d.tr(title), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetTextColor(0, 0, 0)
}

func (d doc) row(i int, l quote.Line, h float64) {
	fill := rowFills[i%2]
	d.pdf.SetFillColor(fill[0], fill[1], fill[2])
	d.pdf.SetFont(d.family, "", 8)

	x, y := d.pdf.GetXY()
	cells := []string{
		"",
		codeLabel(l),
		description(l),
		l.Brand,
		l.Category,
		strconv.Itoa(l.Quantity),
		l.UnitPrice.String(),
		l.Subtotal.String(),
	}
	for j, text := range cells {
		align := "C"
		if j == 2 {
			align = "L"
		}
		d.pdf.CellFormat(colWidths[j], h, d.fit(text, colWidths[j]-2), "1", 0, align, true, 0, "")
	}
	d.pdf.Ln(-1)

	if imageUsable(l.ImagePath) {
		d.pdf.ImageOptions(l.ImagePath, x+1, y+1, imageSize, imageSize, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}
}

// fit translates s and shortens it until it fits in w millimetres.
func (d doc) fit(s string, w float64) string {
	out := d.tr(s)
	if d.pdf.GetStringWidth(out) <= w {
		return out
	}
	r := []rune(s)
	for len(r) > 1 {
		r = r[:len(r)-1]
		out = d.tr(string(r) + "...")
		if d.pdf.GetStringWidth(out) <= w {
			return out
		}
	}
	return out
}

func (d doc) uses(q quote.Quote) {
	d.pdf.SetFont(d.family, "B", 14)
	d.pdf.CellFormat(0, 8, d.tr("Usos principales de los productos"), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)
	for _, l := range q.Lines {
		if !l.Found() {
			continue
		}
		if d.needsBreak(12) {
			d.pdf.AddPage()
		}
		d.pdf.SetFont(d.family, "B", 9)
		d.pdf.MultiCell(0, 5, d.tr(l.Description+":"), "", "L", false)
		d.pdf.SetFont(d.family, "", 9)
		d.pdf.MultiCell(0, 5, d.tr(quote.UsesFor(l.Category, l.Description)), "", "L", false)
		d.pdf.Ln(1)
	}
}

func codeLabel(l quote.Line) string {
	if l.MatchKind == catalog.Approximate {
		return l.MatchedCode + " (~" + l.RequestedCode + ")"
	}
	return l.MatchedCode
}

func description(l quote.Line) string {
	if !l.Found() {
		return "NO ENCONTRADO"
	}
	return trim(l.Description, maxDescRunes)
}

func imageUsable(path string) bool {
	if path == "" {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return false
	}
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func spanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
