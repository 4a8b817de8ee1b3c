package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardforge/configs"
	"github.com/youruser/cardforge/internal/style"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalog, err := style.Load()
	require.NoError(t, err)
	cfg := &configs.Config{
		Port:           8080,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 16 << 20,
		BatchWorkers:   2,
		CleanupMaxAge:  3600,
	}
	r := gin.New()
	RegisterRoutes(r, catalog, cfg)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testLogoImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(8, 8, color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff})
	return img
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListEndpoints(t *testing.T) {
	r := testRouter(t)
	for _, path := range []string{"/api/templates", "/api/color-schemes", "/api/fonts"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestPreviewReturnsHalfSizePNG(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/card/preview", gin.H{
		"name":         "Ada Lovelace",
		"template":     "modern",
		"color_scheme": "corporate_blue",
		"font_family":  "inter",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	require.Equal(t, previewWidth, img.Bounds().Dx())
}

func TestPreviewUnknownTemplateIs404(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/card/preview", gin.H{
		"name":         "Ada Lovelace",
		"template":     "brutalist",
		"color_scheme": "corporate_blue",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewMissingNameIs400(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/card/preview", gin.H{
		"template":     "modern",
		"color_scheme": "corporate_blue",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewUnknownFontFallsBack(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/card/preview", gin.H{
		"name":         "Ada Lovelace",
		"template":     "modern",
		"color_scheme": "corporate_blue",
		"font_family":  "wingdings",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestExportFormats(t *testing.T) {
	r := testRouter(t)
	body := gin.H{
		"name":         "Ada Lovelace",
		"template":     "modern",
		"color_scheme": "corporate_blue",
	}
	cases := map[string]string{
		"png":       "image/png",
		"pdf":       "application/pdf",
		"pdf_print": "application/pdf",
		"html":      "text/html; charset=utf-8",
	}
	for format, mime := range cases {
		w := postJSON(t, r, "/api/card/export/"+format, body)
		require.Equal(t, http.StatusOK, w.Code, format)
		require.Equal(t, mime, w.Header().Get("Content-Type"), format)
		require.Contains(t, w.Header().Get("Content-Disposition"), "attachment", format)
	}
}

func TestExportUnknownFormatIs400(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/card/export/docx", gin.H{"name": "Ada"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoUpload(t *testing.T) {
	r := testRouter(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, testLogoImage()))

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/card/logo", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["logo_path"])
}

func TestLogoUploadRejectsNonImage(t *testing.T) {
	r := testRouter(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("definitely not a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/card/logo", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoUploadRejectsBadExtension(t *testing.T) {
	r := testRouter(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("logo", "logo.exe")
	require.NoError(t, err)
	_, err = fw.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/card/logo", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchEndpoint(t *testing.T) {
	r := testRouter(t)

	csv := "name,job_title,company,email\n" +
		"Ada Lovelace,Analyst,AE Ltd,ada@example.com\n" +
		",Logician,NPL,alan@example.com\n"

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("csv_file", "people.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("export_format", "png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/batch", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	require.Equal(t, "1", w.Header().Get("X-Batch-Failures"))
}

func TestBatchRejectsNonCSV(t *testing.T) {
	r := testRouter(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("csv_file", "people.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("name\nAda\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/batch", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
