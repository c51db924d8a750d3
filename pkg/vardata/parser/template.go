package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/vardata-go/pkg/vardata/models"
	"gopkg.in/yaml.v3"
)

// LoadTemplate reads and validates a YAML template document.
func LoadTemplate(path string) (*models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tpl, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return tpl, nil
}

// ParseTemplate decodes and validates a YAML template document.
func ParseTemplate(data []byte) (*models.Template, error) {
	var tpl models.Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if err := ValidateTemplate(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// ValidateTemplate checks canvas size, layer types and path geometry.
// It returns every problem found, joined.
func ValidateTemplate(tpl *models.Template) error {
	var errs []error

	if tpl.Width <= 0 || tpl.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", tpl.Width, tpl.Height))
	}

	for i, l := range tpl.Layers {
		if l.Name == "" {
			errs = append(errs, fmt.Errorf("layers[%d]: name is required", i))
		}
		switch l.Type {
		case "", models.LayerRaster, models.LayerText:
		default:
			errs = append(errs, fmt.Errorf("layers[%d] %q: unknown type %q (must be raster or text)", i, l.Name, l.Type))
		}
		if l.W != nil && *l.W <= 0 || l.H != nil && *l.H <= 0 {
			errs = append(errs, fmt.Errorf("layers[%d] %q: size must be positive", i, l.Name))
		}
		if l.Opacity != nil && (*l.Opacity < 0 || *l.Opacity > 1) {
			errs = append(errs, fmt.Errorf("layers[%d] %q: opacity must be between 0 and 1", i, l.Name))
		}
		if l.IsText() && l.Image != "" {
			errs = append(errs, fmt.Errorf("layers[%d] %q: text layers cannot load an image", i, l.Name))
		}
		switch l.Align {
		case "", "left", "center", "right":
		default:
			errs = append(errs, fmt.Errorf("layers[%d] %q: unknown align %q", i, l.Name, l.Align))
		}
	}

	for i, p := range tpl.Paths {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("paths[%d]: name is required", i))
		}
		polys := p.Polygons()
		if len(polys) == 0 {
			errs = append(errs, fmt.Errorf("paths[%d] %q: no points", i, p.Name))
		}
		for _, poly := range polys {
			if len(poly) < 3 {
				errs = append(errs, fmt.Errorf("paths[%d] %q: a closed path needs at least 3 points", i, p.Name))
				break
			}
		}
	}

	return errors.Join(errs...)
}
