package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/render"
	"github.com/youruser/cardforge/internal/style"
)

// The interactive export rebuilds the layout as markup from the same
// CardData/Template/Scheme that produced the composition, so the text stays
// selectable. Coordinates are halved: 1050x600 canvas -> 525x300 CSS px.
const htmlScale = 0.5

type htmlBox struct {
	Style template.CSS
}

type htmlText struct {
	Value string
	Style template.CSS
}

type htmlContact struct {
	Label string
	Value string
}

type htmlView struct {
	Name     string
	CardW    int
	CardH    int
	CardBG   template.CSS
	Boxes    []htmlBox
	Texts    []htmlText
	QRData   string
	LogoData string
	QRStyle  template.CSS
	Logo     template.CSS
	Contacts []htmlContact
}

var htmlTpl = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Business Card - {{.Name}}</title>
<style>
body { margin: 0; padding: 20px; font-family: Arial, sans-serif; background: #f5f5f5; }
.card-container { max-width: 600px; margin: 0 auto; background: white; border-radius: 10px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); overflow: hidden; }
.card { position: relative; width: {{.CardW}}px; height: {{.CardH}}px; margin: 20px auto; {{.CardBG}} }
.card div { position: absolute; white-space: nowrap; overflow: hidden; }
.contact-info { padding: 20px; }
.contact-item { margin: 10px 0; padding: 10px; background: #f8f9fa; border-radius: 5px; cursor: pointer; }
.contact-item:hover { background: #e9ecef; }
.label { font-weight: bold; color: #6c757d; font-size: 12px; text-transform: uppercase; margin-bottom: 5px; }
.value { font-size: 16px; color: #333; }
</style>
</head>
<body>
<div class="card-container">
<div class="card">
{{- range .Boxes}}
<div style="{{.Style}}"></div>
{{- end}}
{{- range .Texts}}
<div style="{{.Style}}">{{.Value}}</div>
{{- end}}
{{- if .LogoData}}
<img src="{{.LogoData}}" alt="Logo" style="position:absolute;{{.Logo}}">
{{- end}}
{{- if .QRData}}
<img src="{{.QRData}}" alt="Contact QR" style="position:absolute;{{.QRStyle}}">
{{- end}}
</div>
<div class="contact-info">
<h2>Contact Information</h2>
{{- range .Contacts}}
<div class="contact-item" onclick="copyToClipboard(this.querySelector('.value').textContent)">
<div class="label">{{.Label}}</div>
<div class="value">{{.Value}}</div>
</div>
{{- end}}
</div>
</div>
<script>
function copyToClipboard(text) {
  navigator.clipboard.writeText(text).then(function() {
    alert('Copied to clipboard: ' + text);
  });
}
</script>
</body>
</html>
`))

// HTML exports the interactive variant.
func HTML(comp *render.Composition) (*Artifact, error) {
	req := comp.Request()
	view, err := buildHTMLView(req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := htmlTpl.Execute(&buf, view); err != nil {
		return nil, &apperr.AdapterError{Stage: "html template", Cause: err}
	}
	return &Artifact{
		Bytes:    buf.Bytes(),
		MIME:     "text/html; charset=utf-8",
		Filename: exportName("html"),
	}, nil
}

func buildHTMLView(req render.Request) (*htmlView, error) {
	v := &htmlView{
		Name:  req.Data.Name,
		CardW: int(style.CanvasWidth * htmlScale),
		CardH: int(style.CanvasHeight * htmlScale),
	}

	bg := req.Template.Background
	if c, ok := req.Scheme.Slot(bg); ok {
		v.CardBG = template.CSS("background:" + cssHex(c.R, c.G, c.B) + ";")
	} else if bg != "" {
		v.CardBG = template.CSS("background:" + bg + ";")
	} else {
		v.CardBG = "background:#ffffff;"
	}

	for _, p := range req.Template.Placements {
		switch p.Kind {
		case style.KindRect, style.KindFrame, style.KindEllipse:
			v.Boxes = append(v.Boxes, htmlBox{Style: boxCSS(p, req.Scheme)})
		case style.KindText:
			value := req.Data.Field(p.Field)
			if value == "" {
				continue
			}
			if p.Upper {
				value = strings.ToUpper(value)
			}
			v.Texts = append(v.Texts, htmlText{Value: value, Style: textCSS(p, req)})
		case style.KindQR:
			if !req.Data.IncludeQR {
				continue
			}
			qr, err := render.QRPNG(req.Data, int(p.W*htmlScale))
			if err != nil {
				return nil, err
			}
			v.QRData = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qr)
			v.QRStyle = placeCSS(p)
		case style.KindLogo:
			if req.Data.LogoPath == "" {
				continue
			}
			raw, err := os.ReadFile(req.Data.LogoPath)
			if err != nil {
				continue
			}
			mime := http.DetectContentType(raw)
			v.LogoData = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
			v.Logo = placeCSS(p)
		}
	}

	for _, key := range []string{"name", "job_title", "company", "email", "phone", "website", "address"} {
		if value := req.Data.Field(key); value != "" {
			v.Contacts = append(v.Contacts, htmlContact{Label: contactLabel(key), Value: value})
		}
	}
	if req.Data.SocialPlatform != "" && req.Data.SocialHandle != "" {
		v.Contacts = append(v.Contacts, htmlContact{Label: req.Data.SocialPlatform, Value: req.Data.SocialHandle})
	}
	return v, nil
}

func boxCSS(p style.Placement, scheme *style.Scheme) template.CSS {
	c, _ := scheme.Slot(p.Slot)
	var b strings.Builder
	fmt.Fprintf(&b, "left:%.0fpx;top:%.0fpx;width:%.0fpx;height:%.0fpx;",
		p.X*htmlScale, p.Y*htmlScale, p.W*htmlScale, p.H*htmlScale)
	switch p.Kind {
	case style.KindFrame:
		fmt.Fprintf(&b, "border:%.0fpx solid %s;box-sizing:border-box;",
			maxf(1, p.Stroke*htmlScale), cssHex(c.R, c.G, c.B))
	case style.KindEllipse:
		fmt.Fprintf(&b, "background:%s;border-radius:50%%;", cssHex(c.R, c.G, c.B))
	default:
		fmt.Fprintf(&b, "background:%s;", cssHex(c.R, c.G, c.B))
	}
	return template.CSS(b.String())
}

func textCSS(p style.Placement, req render.Request) template.CSS {
	c, _ := req.Scheme.Slot(p.Slot)
	size := style.RoleSize(p.Role) * htmlScale
	align := p.Align
	if req.Align != "" {
		align = req.Align
	}
	if align == "" {
		align = style.AlignLeft
	}
	weight := "normal"
	if p.Bold {
		weight = "bold"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "left:%.0fpx;top:%.0fpx;width:%.0fpx;", p.X*htmlScale, p.Y*htmlScale-size, p.MaxW*htmlScale)
	fmt.Fprintf(&b, "font-size:%.0fpx;color:%s;font-weight:%s;text-align:%s;font-family:%s;",
		size, cssHex(c.R, c.G, c.B), weight, align, fontStack(req.Font.ID))
	return template.CSS(b.String())
}

func placeCSS(p style.Placement) template.CSS {
	return template.CSS(fmt.Sprintf("left:%.0fpx;top:%.0fpx;width:%.0fpx;height:%.0fpx;",
		p.X*htmlScale, p.Y*htmlScale, p.W*htmlScale, p.H*htmlScale))
}

func cssHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func fontStack(id string) string {
	switch id {
	case "merriweather":
		return "Merriweather, Georgia, serif"
	case "mono":
		return "'Courier New', monospace"
	}
	return titleCase(id) + ", Arial, sans-serif"
}

func contactLabel(key string) string {
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
