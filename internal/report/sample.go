package report

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	operatorLabel = "Операція"
	sampleWidth   = 20
)

var sampleOperators = []string{"+", "-", "*", "/"} //nolint:gochecknoglobals // fixed alphabet

// SampleInput generates a well-formed report input with rows data rows and
// cols value columns. Rows are labeled with consecutive dates, values lie in
// [5, 15) and use "," as the decimal separator, and each column gets a random
// operator. The same seed always yields the same text.
func SampleInput(rows, cols int, seed uint64) string {
	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // test data
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	for r := range rows {
		b.WriteString(start.AddDate(0, 0, r).Format(time.DateOnly))
		for range cols {
			v := strconv.FormatFloat(rng.Float64()*10+5, 'f', 5, 64) //nolint:mnd // value range and precision
			fmt.Fprintf(&b, " %*s", sampleWidth, strings.Replace(v, ".", ",", 1))
		}
		b.WriteByte('\n')
	}

	b.WriteString(operatorLabel)
	for range cols {
		fmt.Fprintf(&b, " %*s", sampleWidth, sampleOperators[rng.IntN(len(sampleOperators))])
	}
	b.WriteByte('\n')

	return b.String()
}
