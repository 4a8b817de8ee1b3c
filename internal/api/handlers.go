package api

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/youruser/cardforge/configs"
	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/batch"
	"github.com/youruser/cardforge/internal/card"
	"github.com/youruser/cardforge/internal/export"
	"github.com/youruser/cardforge/internal/render"
	"github.com/youruser/cardforge/internal/style"
	"github.com/youruser/cardforge/internal/util"
)

// Preview width in pixels, half the logical canvas.
const previewWidth = 525

var allowedLogoExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

type server struct {
	catalog *style.Catalog
	cfg     *configs.Config
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) listTemplates(c *gin.Context) {
	ids := []string{}
	for _, t := range s.catalog.Templates.List() {
		ids = append(ids, t.ID)
	}
	c.JSON(http.StatusOK, gin.H{"templates": ids})
}

func (s *server) listSchemes(c *gin.Context) {
	out := []gin.H{}
	for _, sc := range s.catalog.Schemes.List() {
		out = append(out, gin.H{
			"id":      sc.ID,
			"primary": fmt.Sprintf("#%02x%02x%02x", sc.Primary.R, sc.Primary.G, sc.Primary.B),
			"accent":  fmt.Sprintf("#%02x%02x%02x", sc.Accent.R, sc.Accent.G, sc.Accent.B),
		})
	}
	c.JSON(http.StatusOK, gin.H{"color_schemes": out})
}

func (s *server) listFonts(c *gin.Context) {
	ids := []string{}
	for _, f := range s.catalog.Fonts.List() {
		ids = append(ids, f.ID)
	}
	c.JSON(http.StatusOK, gin.H{"fonts": ids})
}

// cardRequest is the JSON body for preview and export: the contact record
// plus the style selection.
type cardRequest struct {
	card.Data
	Template    string `json:"template"`
	ColorScheme string `json:"color_scheme"`
	FontFamily  string `json:"font_family"`
	TextAlign   string `json:"text_align"`
}

// resolve validates the style selection against the registries. An unknown
// font falls back to the default face instead of failing the request.
func (s *server) resolve(req cardRequest) (render.Request, error) {
	tpl, err := s.catalog.Templates.Lookup(req.Template)
	if err != nil {
		return render.Request{}, err
	}
	scheme, err := s.catalog.Schemes.Lookup(req.ColorScheme)
	if err != nil {
		return render.Request{}, err
	}
	font, err := s.catalog.Fonts.Lookup(req.FontFamily)
	if err != nil {
		log.WithField("font", req.FontFamily).Warn("unknown font, using default")
		font = s.catalog.Fonts.Default()
	}
	switch req.TextAlign {
	case "", style.AlignLeft, style.AlignCenter, style.AlignRight:
	default:
		return render.Request{}, &apperr.ValidationError{Field: "text_align", Reason: "must be left, center or right"}
	}
	return render.Request{
		Data:     req.Data,
		Template: tpl,
		Scheme:   scheme,
		Font:     font,
		Align:    req.TextAlign,
	}, nil
}

// previewHandler renders a half-size PNG for on-screen display.
func (s *server) previewHandler(c *gin.Context) {
	var req cardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rr, err := s.resolve(req)
	if err != nil {
		respondError(c, err)
		return
	}
	comp, err := render.Render(rr)
	if err != nil {
		respondError(c, err)
		return
	}
	preview := imaging.Resize(comp.Image(), previewWidth, 0, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, preview); err != nil {
		respondError(c, &apperr.AdapterError{Stage: "preview encode", Cause: err})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// exportHandler renders one card and streams the artifact in the requested
// format as a download.
func (s *server) exportHandler(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req cardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rr, err := s.resolve(req)
	if err != nil {
		respondError(c, err)
		return
	}
	comp, err := render.Render(rr)
	if err != nil {
		respondError(c, err)
		return
	}
	artifact, err := export.Export(format, comp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Data(http.StatusOK, artifact.MIME, artifact.Bytes)
}

// logoHandler accepts a multipart upload or a logo_url form value, verifies
// the payload is a decodable image and stores it under the upload directory.
func (s *server) logoHandler(c *gin.Context) {
	var raw []byte
	var name string

	if file, err := c.FormFile("logo"); err == nil {
		if file.Size > s.cfg.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "logo too large"})
			return
		}
		if !allowedLogoExts[strings.ToLower(filepath.Ext(file.Filename))] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported logo file type"})
			return
		}
		f, err := file.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(f); err != nil {
			respondError(c, err)
			return
		}
		raw = buf.Bytes()
		name = filepath.Base(file.Filename)
	} else if url := c.PostForm("logo_url"); url != "" {
		raw, err = util.GetBytes(url, s.cfg.MaxUploadBytes)
		if err != nil {
			log.WithError(err).Warn("logo download failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not fetch logo url"})
			return
		}
		name = "remote.png"
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no logo provided"})
		return
	}

	if !strings.HasPrefix(http.DetectContentType(raw), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo is not an image"})
		return
	}
	if _, err := imaging.Decode(bytes.NewReader(raw)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image file"})
		return
	}

	stored := fmt.Sprintf("%d_%s", time.Now().Unix(), sanitizeFilename(name))
	path := filepath.Join(s.cfg.UploadDir, stored)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logo_path": path})
}

// batchHandler runs a CSV batch and streams the resulting zip. Row failures
// are reported in a header alongside the partial archive.
func (s *server) batchHandler(c *gin.Context) {
	file, err := c.FormFile("csv_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no CSV file uploaded"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please upload a CSV file"})
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	format, err := export.ParseFormat(c.DefaultPostForm("export_format", "png"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := batch.Run(c.Request.Context(), f, batch.Options{
		Catalog:    s.catalog,
		TemplateID: c.DefaultPostForm("template", "modern"),
		SchemeID:   c.DefaultPostForm("color_scheme", "corporate_blue"),
		FontID:     c.DefaultPostForm("font_family", style.DefaultFontID),
		Align:      c.PostForm("text_align"),
		Format:     format,
		Workers:    s.cfg.BatchWorkers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if result.State == batch.StateFailed {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "no rows could be rendered",
			"failures": result.Failures,
		})
		return
	}
	c.Header("X-Batch-Failures", fmt.Sprintf("%d", len(result.Failures)))
	c.Header("Content-Disposition", `attachment; filename="`+result.Archive.Filename+`"`)
	c.Data(http.StatusOK, result.Archive.MIME, result.Archive.Bytes)
}

// respondError maps the error taxonomy onto HTTP statuses. Internal causes
// are logged, never leaked.
func respondError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	var perr *apperr.FatalParseError
	var aerr *apperr.AdapterError
	var eerr *apperr.EncodingError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr), errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &aerr):
		log.WithError(aerr.Cause).WithField("stage", aerr.Stage).Error("export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	case errors.As(err, &eerr):
		log.WithError(err).Error("encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "card generation failed"})
	default:
		log.WithError(err).Error("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
