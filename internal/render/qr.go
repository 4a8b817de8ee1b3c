package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/card"
)

// VCardPayload builds the vCard 3.0 text encoded into the QR code. The
// field order and the ADR separator layout are fixed; scanners depend on
// this exact shape.
func VCardPayload(d card.Data) string {
	return fmt.Sprintf(`BEGIN:VCARD
VERSION:3.0
FN:%s
ORG:%s
TITLE:%s
EMAIL:%s
TEL:%s
URL:%s
ADR:;;%s;;;;
END:VCARD`,
		d.Name, d.Company, d.JobTitle, d.Email, d.Phone, d.Website, d.Address)
}

// QRImage encodes the record's vCard as a size x size image with medium
// error correction. Same record, same bytes.
func QRImage(d card.Data, size int) (image.Image, error) {
	q, err := qrcode.New(VCardPayload(d), qrcode.Medium)
	if err != nil {
		return nil, &apperr.EncodingError{Cause: err}
	}
	return q.Image(size), nil
}

// QRPNG returns PNG bytes of the record's contact QR and verifies they
// decode back.
func QRPNG(d card.Data, size int) ([]byte, error) {
	pngBytes, err := qrcode.Encode(VCardPayload(d), qrcode.Medium, size)
	if err != nil {
		return nil, &apperr.EncodingError{Cause: err}
	}
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, &apperr.EncodingError{Cause: err}
	}
	return pngBytes, nil
}
