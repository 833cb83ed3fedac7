package report

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/code19m/errx"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName   = "Report"
	labelColumn = "A"
	labelWidth  = 14
	nameSuffix  = ". Report.xlsx"
)

// Generate parses raw and builds the workbook in one step.
func Generate(raw string) ([]byte, error) {
	m, err := Parse(raw)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return Build(m)
}

// FileName returns the download name of the report built from fileName.
func FileName(fileName string) string {
	return fileName + nameSuffix
}

// Build renders m as an xlsx document. Rows 1..N mirror the input lines,
// operator row included, and row N+1 holds the formulas. Tokens that read as
// numbers, with either "." or "," as the decimal separator, are written as
// numeric cells.
func Build(m *Matrix) ([]byte, error) {
	formulas, err := m.Formulas()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, errx.Wrap(err)
	}

	rowNum := 1
	for _, row := range append(slices.Clip(m.Data), m.Operators) {
		if err = writeRow(f, rowNum, row); err != nil {
			return nil, errx.Wrap(err, errx.WithDetails(errx.D{"row": rowNum}))
		}
		rowNum++
	}

	if err = writeResults(f, rowNum, formulas); err != nil {
		return nil, errx.Wrap(err)
	}

	if err = f.SetColWidth(sheetName, labelColumn, labelColumn, labelWidth); err != nil {
		return nil, errx.Wrap(err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, row Row) error {
	cells := make([]any, 0, len(row.Tokens)+1)
	cells = append(cells, row.Label)
	for _, tok := range row.Tokens {
		cells = append(cells, cellValue(tok))
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errx.Wrap(err)
	}
	return f.SetSheetRow(sheetName, cell, &cells)
}

func writeResults(f *excelize.File, rowNum int, formulas []string) error {
	labelCell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errx.Wrap(err)
	}
	if err = f.SetCellStr(sheetName, labelCell, ResultLabel); err != nil {
		return errx.Wrap(err)
	}

	for c, formula := range formulas {
		cell, err := excelize.CoordinatesToCellName(c+2, rowNum) //nolint:mnd // skip the label column
		if err != nil {
			return errx.Wrap(err)
		}
		// The stored formula text carries no leading "=".
		if err = f.SetCellFormula(sheetName, cell, strings.TrimPrefix(formula, "=")); err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{"cell": cell}))
		}
	}

	boldID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errx.Wrap(err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(formulas)+1, rowNum)
	if err != nil {
		return errx.Wrap(err)
	}
	return f.SetCellStyle(sheetName, labelCell, lastCell, boldID)
}

// decimalToken matches plain decimal numbers with a "." or "," separator.
var decimalToken = regexp.MustCompile(`^-?[0-9]+([.,][0-9]+)?$`)

// cellValue returns tok as a float64 when it is a plain decimal number that
// renders back to the same digits, and as the original string otherwise.
// "12,5" becomes 12.5; "007", "1.50", "1e3" and "0x1p3" stay text.
func cellValue(tok string) any {
	if !decimalToken.MatchString(tok) {
		return tok
	}

	normalized := strings.Replace(tok, ",", ".", 1)
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(v, 0) {
		return tok
	}
	if strconv.FormatFloat(v, 'f', -1, 64) != normalized {
		return tok
	}
	return v
}
