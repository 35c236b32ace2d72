package domain

// EdgeStyle is the visual style of a rendered edge.
type EdgeStyle struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// RenderEdge is an edge ready for the rendering surface.
type RenderEdge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Type   EdgeType  `json:"type"`
	Style  EdgeStyle `json:"style"`
}

// FitViewCommand asks the camera to recenter on the visible nodes.
type FitViewCommand struct {
	Padding    float64 `json:"padding"`
	MinZoom    float64 `json:"minZoom"`
	MaxZoom    float64 `json:"maxZoom"`
	DurationMs int     `json:"durationMs"`
}
