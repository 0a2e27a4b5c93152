package statement

import (
	"encoding/csv"
	"fmt"
	"io"
)

// TemplateHeaders are the canonical column names an exporter can use to
// avoid relying on layout auto-detection.
var TemplateHeaders = []string{"Date", "Description", "Amount"}

// WriteTemplate writes a header-only CSV of the canonical field names.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TemplateHeaders); err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
