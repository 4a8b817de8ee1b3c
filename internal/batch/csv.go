package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/card"
)

// Columns every batch CSV must carry. Other CardData columns are optional,
// as are per-row template/color_scheme overrides.
var requiredColumns = []string{"name", "job_title", "company", "email"}

// Row is one parsed data row. Index is 1-based over data rows (the header
// does not count), and is what RowFailure reports refer to.
type Row struct {
	Index      int
	Data       card.Data
	TemplateID string
	SchemeID   string
}

// ParseRows reads the whole tabular input. A malformed file or a missing
// required header column fails with *apperr.FatalParseError: without a
// trustworthy header no row is safely interpretable.
func ParseRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, &apperr.FatalParseError{Reason: err.Error()}
	}
	if len(records) < 1 {
		return nil, &apperr.FatalParseError{Reason: "missing header row"}
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &apperr.FatalParseError{
			Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		r := Row{
			Index: i + 1,
			Data: card.Data{
				Name:           get(rec, "name"),
				JobTitle:       get(rec, "job_title"),
				Company:        get(rec, "company"),
				Email:          get(rec, "email"),
				Phone:          get(rec, "phone"),
				Website:        get(rec, "website"),
				Address:        get(rec, "address"),
				SocialPlatform: get(rec, "social_platform"),
				SocialHandle:   get(rec, "social_handle"),
				IncludeQR:      parseBool(get(rec, "include_qr")),
			},
			TemplateID: get(rec, "template"),
			SchemeID:   get(rec, "color_scheme"),
		}
		out = append(out, r)
	}
	return out, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
