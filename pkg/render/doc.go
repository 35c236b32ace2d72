// Package render projects graph edges into render-ready values and exports the
// graph as a Mermaid flowchart.
package render
