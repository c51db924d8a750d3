package raster

import (
	"image"

	"golang.org/x/image/vector"
)

// mask rasterizes the path into an anti-aliased selection covering the
// canvas.
func (p *Path) mask(width, height int) *image.Alpha {
	z := vector.NewRasterizer(width, height)
	for _, poly := range p.polygons {
		if len(poly) == 0 {
			continue
		}
		z.MoveTo(float32(poly[0][0]), float32(poly[0][1]))
		for _, pt := range poly[1:] {
			z.LineTo(float32(pt[0]), float32(pt[1]))
		}
		z.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}
