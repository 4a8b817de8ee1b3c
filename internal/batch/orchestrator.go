package batch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardforge/internal/export"
	"github.com/youruser/cardforge/internal/render"
	"github.com/youruser/cardforge/internal/style"
)

// DefaultWorkers bounds row parallelism. Rows share no mutable state, but
// each in-flight row holds a full composition in memory.
const DefaultWorkers = 4

// State of a finished batch.
type State int

const (
	StateDone State = iota
	StateFailed
)

// RowFailure records why one row produced no card. It never aborts the
// batch.
type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Options configures a batch run. TemplateID, SchemeID and FontID are the
// defaults; rows may override the first two.
type Options struct {
	Catalog    *style.Catalog
	TemplateID string
	SchemeID   string
	FontID     string
	Align      string
	Format     export.Format
	Workers    int
}

// Result is the outcome of a batch: the archive of successful rows (nil
// when State is StateFailed) plus every per-row failure. Both are always
// surfaced together so partial success stays visible.
type Result struct {
	State    State
	Archive  *export.Artifact
	Failures []RowFailure
}

type rowOutcome struct {
	row      Row
	artifact *export.Artifact
	failure  *RowFailure
	skipped  bool
}

// Run parses the tabular input and renders + exports every row
// independently. Parse errors and unknown default style ids abort the whole
// batch; anything that goes wrong on a single row is collected and the next
// row proceeds. Cancellation is cooperative: it is checked before each row
// starts, and rows already rendered stay in the partial result.
func Run(ctx context.Context, input io.Reader, opts Options) (*Result, error) {
	rows, err := ParseRows(input)
	if err != nil {
		return nil, err
	}

	defaultTpl, err := opts.Catalog.Templates.Lookup(opts.TemplateID)
	if err != nil {
		return nil, err
	}
	defaultScheme, err := opts.Catalog.Schemes.Lookup(opts.SchemeID)
	if err != nil {
		return nil, err
	}
	font, err := opts.Catalog.Fonts.Lookup(opts.FontID)
	if err != nil {
		font = opts.Catalog.Fonts.Default()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	outcomes := make([]rowOutcome, len(rows))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if ctx.Err() != nil {
				outcomes[i] = rowOutcome{row: row, skipped: true}
				return nil
			}
			outcomes[i] = renderRow(row, opts, defaultTpl, defaultScheme, font)
			return nil
		})
	}
	g.Wait() // workers never return errors; failures live in outcomes

	var failures []RowFailure
	var entries []archiveEntry
	for _, o := range outcomes {
		switch {
		case o.skipped:
		case o.failure != nil:
			failures = append(failures, *o.failure)
		default:
			entries = append(entries, archiveEntry{
				Name: entryName(o.row, opts.Format),
				Data: o.artifact.Bytes,
			})
		}
	}

	if len(entries) == 0 {
		return &Result{State: StateFailed, Failures: failures}, nil
	}

	archive, err := buildArchive(entries)
	if err != nil {
		return nil, err
	}
	return &Result{State: StateDone, Archive: archive, Failures: failures}, nil
}

func renderRow(row Row, opts Options, tpl *style.Template, scheme *style.Scheme, font *style.Font) rowOutcome {
	if row.TemplateID != "" {
		t, err := opts.Catalog.Templates.Lookup(row.TemplateID)
		if err != nil {
			return rowOutcome{row: row, failure: &RowFailure{Row: row.Index, Reason: err.Error()}}
		}
		tpl = t
	}
	if row.SchemeID != "" {
		s, err := opts.Catalog.Schemes.Lookup(row.SchemeID)
		if err != nil {
			return rowOutcome{row: row, failure: &RowFailure{Row: row.Index, Reason: err.Error()}}
		}
		scheme = s
	}

	comp, err := render.Render(render.Request{
		Data:     row.Data,
		Template: tpl,
		Scheme:   scheme,
		Font:     font,
		Align:    opts.Align,
	})
	if err != nil {
		return rowOutcome{row: row, failure: &RowFailure{Row: row.Index, Reason: err.Error()}}
	}
	artifact, err := export.Export(opts.Format, comp)
	if err != nil {
		return rowOutcome{row: row, failure: &RowFailure{Row: row.Index, Reason: err.Error()}}
	}
	return rowOutcome{row: row, artifact: artifact}
}

// entryName builds a deterministic, collision-free archive name from the
// row index and the sanitized card name.
func entryName(row Row, f export.Format) string {
	return fmt.Sprintf("card_%03d_%s.%s", row.Index, sanitizeName(row.Data.Name), f.Ext())
}

func sanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}
