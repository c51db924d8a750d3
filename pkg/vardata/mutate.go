package vardata

import (
	"errors"
	"image/color"
	"strings"
)

var errBoolToken = errors.New(`expected "true" or "false"`)

// ParseVisibility parses a visibility cell. Only "true" and "false" are
// accepted, in any letter case.
func ParseVisibility(raw string) (bool, error) {
	switch {
	case strings.EqualFold(raw, "true"):
		return true, nil
	case strings.EqualFold(raw, "false"):
		return false, nil
	default:
		return false, &ValueError{Kind: KindVisibility, Value: raw, Err: errBoolToken}
	}
}

// Apply sets one cell value on a resolved element. Each kind maps to a
// single host operation, so a failure leaves the element unchanged.
// paint is updated in place for fill kinds.
func Apply(doc Document, el Element, kind PropertyKind, raw string, paint *PaintContext, colors ColorParser) error {
	switch kind {
	case KindVisibility:
		return applyVisibility(el, raw)
	case KindForeground:
		return applyFill(doc, el, kind, FillForeground, raw, paint, colors)
	case KindBackground:
		return applyFill(doc, el, kind, FillBackground, raw, paint, colors)
	case KindText:
		return applyText(el, raw)
	default:
		return &SchemaError{Token: kind.String(), Reason: "unsupported property kind"}
	}
}

func applyVisibility(el Element, raw string) error {
	visible, err := ParseVisibility(raw)
	if err != nil {
		return err
	}
	if el.Kind != ElementLayer {
		return &TypeMismatchError{Name: el.Name, Kind: KindVisibility, Reason: "paths have no visibility"}
	}
	if err := el.Layer.SetVisible(visible); err != nil {
		return NewHostError("set visibility", err)
	}
	return nil
}

func applyText(el Element, raw string) error {
	if el.Kind != ElementLayer || !el.Layer.IsText() {
		return &TypeMismatchError{Name: el.Name, Kind: KindText, Reason: "not a text layer"}
	}
	if err := el.Layer.SetText(raw); err != nil {
		return NewHostError("set text", err)
	}
	return nil
}

func applyFill(doc Document, el Element, kind PropertyKind, src FillSource, raw string, paint *PaintContext, colors ColorParser) error {
	c, err := colors.ParseColor(raw)
	if err != nil {
		return &ValueError{Kind: kind, Value: raw, Err: err}
	}

	switch el.Kind {
	case ElementPath:
		target, ok := TopmostDrawable(doc)
		if !ok {
			return &TypeMismatchError{Name: el.Name, Kind: kind, Reason: "document has no drawable layer to fill"}
		}
		setPaintColor(paint, src, c)
		if err := doc.SelectPath(el.Path); err != nil {
			return NewHostError("select path", err)
		}
		if err := doc.FillSelection(target, *paint, src); err != nil {
			return NewHostError("fill selection", err)
		}
	case ElementLayer:
		if !el.Layer.IsDrawable() {
			return &TypeMismatchError{Name: el.Name, Kind: kind, Reason: "layer is not drawable"}
		}
		setPaintColor(paint, src, c)
		if err := el.Layer.Fill(*paint, src); err != nil {
			return NewHostError("fill layer", err)
		}
	default:
		return &TypeMismatchError{Name: el.Name, Kind: kind, Reason: "unresolved element"}
	}
	return nil
}

func setPaintColor(paint *PaintContext, src FillSource, c color.Color) {
	if src == FillBackground {
		paint.Background = c
	} else {
		paint.Foreground = c
	}
}
