package vault

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// readCSV renders a CSV attachment as header-labelled rows, one row per
// line.
func readCSV(abspath string) (string, error) {
	f, err := os.Open(abspath)
	if err != nil {
		return "", fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var buf strings.Builder
	for _, row := range records[1:] {
		var cells []string
		for i, cell := range row {
			if i < len(headers) {
				cells = append(cells, headers[i]+": "+cell)
			} else {
				cells = append(cells, cell)
			}
		}
		buf.WriteString(strings.Join(cells, ", "))
		buf.WriteString("\n")
	}
	return strings.TrimSpace(buf.String()), nil
}
