package leads

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"leadqual-engine/internal/domain"
)

// ReadCSV loads scraper output: a CSV with company/title and optional
// location/url columns, matched by header name case-insensitively. Row
// order defines the source index the checkpoint tracks. Duplicates by URL
// are tolerated here; the batch processor dedupes them.
func ReadCSV(path string) ([]domain.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["company"]; !ok {
		return nil, fmt.Errorf("input %s: missing company column", path)
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("input %s: missing title column", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.JobRecord
	for idx := 0; ; idx++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", idx, err)
		}
		out = append(out, domain.JobRecord{
			Company:  field(row, "company"),
			Title:    field(row, "title"),
			Location: field(row, "location"),
			URL:      field(row, "url"),
			Index:    idx,
		})
	}
	return out, nil
}
