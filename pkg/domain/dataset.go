package domain

// Declaration is a root, company, education or soft-skill entry of a dataset.
type Declaration struct {
	ID     string   `json:"id" yaml:"id"`
	Label  string   `json:"label" yaml:"label"`
	Type   NodeType `json:"type" yaml:"type"`
	Period string   `json:"period,omitempty" yaml:"period,omitempty"`
}

// Achievement is one accomplishment record of a dataset.
type Achievement struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Impact       string   `json:"impact" yaml:"impact"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Company      string   `json:"company" yaml:"company"`
	Period       string   `json:"period" yaml:"period"`
	Category     Category `json:"category" yaml:"category"`
}

// Dataset is the read-only relational input of the graph.
type Dataset struct {
	Declarations []Declaration `json:"nodes" yaml:"nodes"`
	Achievements []Achievement `json:"achievements" yaml:"achievements"`
	Edges        []GraphEdge   `json:"edges" yaml:"edges"`

	// Timeline lists timeline node ids from earliest to latest.
	// When empty, declaration order of company/education nodes is used.
	Timeline []string `json:"timeline,omitempty" yaml:"timeline,omitempty"`
}
