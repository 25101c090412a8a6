package vault

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// readPDF extracts plain text from a PDF attachment, pages separated by a
// blank line.
func readPDF(abspath string) (string, error) {
	f, reader, err := pdflib.Open(abspath)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}
