package domain

// Viewport is the raw size of the rendering area in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margins are the chrome reservations subtracted from the viewport.
type Margins struct {
	Header float64 `json:"header" yaml:"header" mapstructure:"header" env:"HEADER"`
	Footer float64 `json:"footer" yaml:"footer" mapstructure:"footer" env:"FOOTER"`
	Left   float64 `json:"left" yaml:"left" mapstructure:"left" env:"LEFT"`
	Right  float64 `json:"right" yaml:"right" mapstructure:"right" env:"RIGHT"`
}

// SafeArea is the viewport rectangle usable for node placement.
// Width and Height may be zero or negative for degenerate inputs.
type SafeArea struct {
	MinX    float64 `json:"minX"`
	MaxX    float64 `json:"maxX"`
	MinY    float64 `json:"minY"`
	MaxY    float64 `json:"maxY"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
