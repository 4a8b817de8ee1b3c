package batch

import (
	"archive/zip"
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/export"
)

// Entry timestamps are fixed so the same batch always yields the same zip
// bytes.
var archiveEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type archiveEntry struct {
	Name string
	Data []byte
}

func buildArchive(entries []archiveEntry) (*export.Artifact, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		})
		if err != nil {
			return nil, &apperr.AdapterError{Stage: "zip entry", Cause: err}
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, &apperr.AdapterError{Stage: "zip write", Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &apperr.AdapterError{Stage: "zip close", Cause: err}
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return &export.Artifact{
		Bytes:    buf.Bytes(),
		MIME:     "application/zip",
		Filename: "business_cards_" + id + ".zip",
	}, nil
}
