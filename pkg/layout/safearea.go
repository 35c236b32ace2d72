package layout

import "github.com/aretw0/careergraph/pkg/domain"

// DefaultMargins are the chrome reservations used when a margin is left at zero.
var DefaultMargins = domain.Margins{
	Header: 80,
	Footer: 120,
	Left:   40,
	Right:  40,
}

// WithDefaults fills zero margins from DefaultMargins.
func WithDefaults(m domain.Margins) domain.Margins {
	if m.Header == 0 {
		m.Header = DefaultMargins.Header
	}
	if m.Footer == 0 {
		m.Footer = DefaultMargins.Footer
	}
	if m.Left == 0 {
		m.Left = DefaultMargins.Left
	}
	if m.Right == 0 {
		m.Right = DefaultMargins.Right
	}
	return m
}

// SafeAreaFor subtracts the margins from the viewport.
// It never fails: oversized margins produce a rectangle with non-positive width or height.
func SafeAreaFor(vp domain.Viewport, m domain.Margins) domain.SafeArea {
	minX := m.Left
	maxX := vp.Width - m.Right
	minY := m.Header
	maxY := vp.Height - m.Footer

	return domain.SafeArea{
		MinX:    minX,
		MaxX:    maxX,
		MinY:    minY,
		MaxY:    maxY,
		CenterX: (minX + maxX) / 2,
		CenterY: (minY + maxY) / 2,
		Width:   maxX - minX,
		Height:  maxY - minY,
	}
}
