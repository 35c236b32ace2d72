package layout

import (
	"testing"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSafeAreaFor(t *testing.T) {
	area := SafeAreaFor(domain.Viewport{Width: 1920, Height: 1080}, DefaultMargins)

	assert.Equal(t, domain.SafeArea{
		MinX:    40,
		MaxX:    1880,
		MinY:    80,
		MaxY:    960,
		CenterX: 960,
		CenterY: 520,
		Width:   1840,
		Height:  880,
	}, area)
}

func TestSafeAreaFor_Degenerate(t *testing.T) {
	area := SafeAreaFor(domain.Viewport{Width: 50, Height: 100}, DefaultMargins)

	assert.LessOrEqual(t, area.Width, 0.0, "oversized margins should collapse the width")
	assert.LessOrEqual(t, area.Height, 0.0, "oversized margins should collapse the height")
	assert.Equal(t, (area.MinX+area.MaxX)/2, area.CenterX)
}

func TestWithDefaults(t *testing.T) {
	m := WithDefaults(domain.Margins{Header: 10})

	assert.Equal(t, 10.0, m.Header)
	assert.Equal(t, DefaultMargins.Footer, m.Footer)
	assert.Equal(t, DefaultMargins.Left, m.Left)
	assert.Equal(t, DefaultMargins.Right, m.Right)
}
