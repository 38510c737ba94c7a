// Package html renders the upload form and quote result pages.
package html

import (
	"bytes"
	"html/template"
	"io"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/domain/money"
	"autocotizar/go_backend/internal/domain/quote"
)

const formTmpl = `<!doctype html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<title>Auto Cotización</title>
</head>
<body>
	<h1>Auto Cotización de Productos</h1>
	<p>Sube un archivo Excel (.xlsx) o CSV con dos columnas: el código del
	producto en la primera columna y la cantidad en la segunda columna.</p>
	<form enctype="multipart/form-data" method="post" action="/">
		<label>Cliente <input type="text" name="cliente" placeholder="{{.DefaultClient}}"></label><br><br>
		<input type="file" name="archivo" accept=".xlsx,.csv" required><br><br>
		<input type="submit" value="Cotizar">
	</form>
</body>
</html>
`

const resultTmpl = `<!doctype html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<title>Resultado de la Cotización</title>
	<style>
		table { border-collapse: collapse; width: 100%; }
		th, td { border: 1px solid #ccc; padding: 8px; text-align: center; }
		th { background-color: #003366; color: #fff; }
		tr:nth-child(even) { background-color: #f2f2f2; }
		tr.approximate td { background-color: #fff7d6; }
		tr.not_found td { background-color: #fde2e2; }
	</style>
</head>
<body>
	<h1>Resultado de la Cotización</h1>
	<p><b>Cliente:</b> {{.ClientName}}<br><b>Fecha:</b> {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
	<table>
		<tr>
			<th>Código</th>
			<th>Coincidencia</th>
			<th>Descripción</th>
			<th>Marca</th>
			<th>Categoría</th>
			<th>Cantidad</th>
			<th>Precio Unitario</th>
			<th>Subtotal</th>
		</tr>
		{{- range .Lines}}
		<tr class="{{.MatchKind}}">
			<td>{{.MatchedCode}}</td>
			<td>{{matchLabel .}}</td>
			<td>{{if .Found}}{{.Description}}{{else}}NO ENCONTRADO{{end}}</td>
			<td>{{.Brand}}</td>
			<td>{{.Category}}</td>
			<td>{{.Quantity}}</td>
			<td>{{money .UnitPrice}}</td>
			<td>{{money .Subtotal}}</td>
		</tr>
		{{- end}}
	</table>
	<h2>Total general: {{money .Total}}</h2>
	{{- with .Unmatched}}
	<p>{{.}} código(s) no se encontraron en la lista de precios; revise las filas marcadas.</p>
	{{- end}}
	<br><a href="/">&#8592; Volver al formulario</a>
</body>
</html>
`

var funcs = template.FuncMap{
	"money": func(m money.Money) string { return m.String() },
	"matchLabel": func(l quote.Line) string {
		switch l.MatchKind {
		case catalog.Exact:
			return "Exacta"
		case catalog.Approximate:
			return "Aproximada (solicitado: " + l.RequestedCode + ")"
		default:
			return "No encontrado"
		}
	},
}

type Renderer struct {
	form   *template.Template
	result *template.Template
	// DefaultClient is shown as the placeholder of the client field.
	DefaultClient string
}

func NewRenderer(defaultClient string) *Renderer {
	return &Renderer{
		form:          template.Must(template.New("form").Parse(formTmpl)),
		result:        template.Must(template.New("result").Funcs(funcs).Parse(resultTmpl)),
		DefaultClient: defaultClient,
	}
}

func (r *Renderer) Form(w io.Writer) error {
	return r.form.Execute(w, struct{ DefaultClient string }{r.DefaultClient})
}

// Result renders into a buffer first so a template error never leaves a
// half-written page behind.
func (r *Renderer) Result(w io.Writer, q quote.Quote) error {
	var buf bytes.Buffer
	if err := r.result.Execute(&buf, q); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
