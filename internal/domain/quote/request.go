package quote

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"autocotizar/go_backend/internal/domain/catalog"
	"autocotizar/go_backend/internal/infra/sheet"
)

// ParseRequestedLines reads an order sheet: a header row, then rows with the
// product code in the first column and the quantity in the second. Blank rows
// are skipped; a quantity that is not a whole number rejects the whole sheet.
// Zero and negative quantities are left for the builder to reject.
func ParseRequestedLines(rows [][]string) ([]RequestedLine, error) {
	if sheet.Width(rows) < 2 {
		return nil, &UploadFormatError{Reason: "the file must have at least two columns (code and quantity)"}
	}
	lines := make([]RequestedLine, 0, len(rows))
	for n, row := range rows[1:] {
		rowNum := n + 2
		if sheet.Blank(row) {
			continue
		}
		code := catalog.NormalizeCode(sheet.Cell(row, 0))
		qty, err := parseQuantity(sheet.Cell(row, 1))
		if err != nil {
			return nil, &UploadFormatError{Row: rowNum, Reason: "invalid quantity", Err: err}
		}
		lines = append(lines, RequestedLine{Code: code, Quantity: qty})
	}
	return lines, nil
}

// parseQuantity accepts integers and integral decimals ("3", "3.0"); Excel
// stores every number as a float.
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > MaxQuantity || n < -MaxQuantity {
			return 0, fmt.Errorf("%q is out of range", s)
		}
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if d.Abs().GreaterThan(decimal.NewFromInt(MaxQuantity)) {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(d.IntPart()), nil
}
