package quote

import (
	"fmt"
	"strings"
)

var usageByKeyword = []struct {
	keyword string
	text    string
}{
	{"PLASTIFICACION SEMI INDUSTRIAL ROLLOS", "Ideal para laminar documentos con una capa protectora transparente en empresas, oficinas o centros de copiado."},
	{"CORCHETE 26/6", "Recomendado para agrupar documentos y papeles de tamaño estándar."},
	{"GRIP", "Accesorio ergonómico para mejorar el agarre y la comodidad al escribir con lápiz o pluma."},
	{"LIBRETA APUNTES", "Cuaderno compacto para tomar notas, tareas escolares o apuntes diarios."},
}

// UsesFor returns the "main uses" blurb printed under the quote table. The
// first keyword contained in the category or description wins.
func UsesFor(category, description string) string {
	cat := strings.ToUpper(category)
	desc := strings.ToUpper(description)
	for _, u := range usageByKeyword {
		if strings.Contains(cat, u.keyword) || strings.Contains(desc, u.keyword) {
			return u.text
		}
	}
	return fmt.Sprintf("Producto de la categoría %q con usos generales de oficina o escolares.", category)
}
