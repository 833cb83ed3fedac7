// Package report turns a whitespace separated text matrix into an xlsx
// workbook whose last row recomputes every column.
//
// Input looks like:
//
//	Січень   100 200
//	Лютий    400 500
//	Операція +   -
//
// Every line starts with a label. The last line holds one operator per
// column; the lines above it are data rows. The workbook mirrors the lines
// and appends a "Результат:" row with the formulas =B1+B2 and =C1-C2.
package report

import (
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/xuri/excelize/v2"
)

// CodeFormatNotAppropriate is the code of every input shape error.
const CodeFormatNotAppropriate = "REPORT_FORMAT_NOT_APPROPRIATE"

// ResultLabel heads the formula row.
const ResultLabel = "Результат:"

// Row is one input line split into its label and the remaining tokens.
type Row struct {
	Label  string
	Tokens []string
}

// Matrix is a parsed report input.
type Matrix struct {
	// Data holds the data rows in input order.
	Data []Row
	// Operators is the last input line; its tokens are the per column operators.
	Operators Row
}

// Parse splits raw into rows. CRLF line endings are accepted and blank lines
// are ignored. It fails when there are fewer than two lines or when any data
// row has a different number of tokens than the operator row.
func Parse(raw string) (*Matrix, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	rows := make([]Row, 0, strings.Count(raw, "\n")+1)
	for line := range strings.SplitSeq(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, Row{Label: fields[0], Tokens: fields[1:]})
	}

	if len(rows) < 2 { //nolint:mnd // one data row and the operator row
		return nil, formatError("at least one data row and an operator row are required", errx.D{
			"lines": len(rows),
		})
	}

	m := &Matrix{
		Data:      rows[:len(rows)-1],
		Operators: rows[len(rows)-1],
	}

	for i, row := range m.Data {
		if len(row.Tokens) != len(m.Operators.Tokens) {
			return nil, formatError("row has a different number of columns than the operator row", errx.D{
				"row":              i + 1,
				"columns":          len(row.Tokens),
				"operator_columns": len(m.Operators.Tokens),
			})
		}
	}

	return m, nil
}

// Columns returns the number of value columns, not counting the label column.
func (m *Matrix) Columns() int {
	return len(m.Operators.Tokens)
}

// Formulas returns one formula per value column. Column c (0-based) lives in
// worksheet column c+2 and its formula joins the references of data rows
// 1..len(Data) with the column's operator, e.g. "=B1+B2+B3".
func (m *Matrix) Formulas() ([]string, error) {
	formulas := make([]string, 0, m.Columns())
	refs := make([]string, len(m.Data))

	for c, op := range m.Operators.Tokens {
		col, err := excelize.ColumnNumberToName(c + 2) //nolint:mnd // skip the label column
		if err != nil {
			return nil, formatError("too many columns", errx.D{"columns": m.Columns()})
		}
		for r := range m.Data {
			refs[r] = fmt.Sprintf("%s%d", col, r+1)
		}
		formulas = append(formulas, "="+strings.Join(refs, op))
	}

	return formulas, nil
}

func formatError(msg string, details errx.D) error {
	return errx.New(
		msg,
		errx.WithCode(CodeFormatNotAppropriate),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(details),
	)
}
