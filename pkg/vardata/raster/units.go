package raster

// PointsPerInch is the PDF user space unit density.
const PointsPerInch = 72

// DefaultDPI maps one canvas pixel to one PDF point.
const DefaultDPI = 72

// PixelsToPoints converts a pixel length to PDF points at dpi.
// A non-positive dpi falls back to DefaultDPI.
func PixelsToPoints(px int, dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return float64(px) * PointsPerInch / dpi
}
