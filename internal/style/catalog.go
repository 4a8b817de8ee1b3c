package style

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/schemes.yaml catalog/templates.yaml
var catalogFS embed.FS

// Catalog holds the three registries. It is built once at process start and
// never mutated afterwards, so concurrent reads need no locking.
type Catalog struct {
	Schemes   *SchemeRegistry
	Templates *TemplateRegistry
	Fonts     *FontRegistry
}

// Load parses the embedded catalogs and validates every template against the
// scheme slot set. Any inconsistency fails startup rather than a render.
func Load() (*Catalog, error) {
	rawSchemes, err := catalogFS.ReadFile("catalog/schemes.yaml")
	if err != nil {
		return nil, fmt.Errorf("read scheme catalog: %w", err)
	}
	var sc schemeCatalogYAML
	if err := yaml.Unmarshal(rawSchemes, &sc); err != nil {
		return nil, fmt.Errorf("parse scheme catalog: %w", err)
	}
	schemes, err := buildSchemeRegistry(sc)
	if err != nil {
		return nil, err
	}

	rawTemplates, err := catalogFS.ReadFile("catalog/templates.yaml")
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	var tc templateCatalogYAML
	if err := yaml.Unmarshal(rawTemplates, &tc); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	templates, err := buildTemplateRegistry(tc)
	if err != nil {
		return nil, err
	}

	fonts, err := buildFontRegistry()
	if err != nil {
		return nil, err
	}

	return &Catalog{Schemes: schemes, Templates: templates, Fonts: fonts}, nil
}
