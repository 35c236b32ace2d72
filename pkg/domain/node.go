package domain

// NodeType tags the GraphNode variant.
type NodeType string

const (
	// NodeTypeRoot is the single profile node every tier fans out from.
	NodeTypeRoot NodeType = "root"
	// NodeTypeCompany is a timeline node for an employer.
	NodeTypeCompany NodeType = "company"
	// NodeTypeEducation is a timeline node for a school.
	NodeTypeEducation NodeType = "education"
	// NodeTypeSoftSkill hangs directly off the root.
	NodeTypeSoftSkill NodeType = "soft-skill"
	// NodeTypeAchievement is a leaf attached to one timeline node.
	NodeTypeAchievement NodeType = "achievement"
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeRoot, NodeTypeCompany, NodeTypeEducation, NodeTypeSoftSkill, NodeTypeAchievement:
		return true
	}
	return false
}

// IsTimeline reports whether nodes of this type live in the horizontal timeline row.
func (t NodeType) IsTimeline() bool {
	return t == NodeTypeCompany || t == NodeTypeEducation
}

// Category classifies an achievement.
type Category string

const (
	CategoryDashboard    Category = "dashboard"
	CategoryTooling      Category = "tooling"
	CategoryDesignSystem Category = "design-system"
	CategoryArchitecture Category = "architecture"
	CategoryInnovation   Category = "innovation"
)

// Valid reports whether c is a known category. The empty category is accepted.
func (c Category) Valid() bool {
	switch c {
	case "", CategoryDashboard, CategoryTooling, CategoryDesignSystem, CategoryArchitecture, CategoryInnovation:
		return true
	}
	return false
}

// GraphNode is a tagged variant keyed by Type.
// Fields that do not apply to a variant are left empty.
type GraphNode struct {
	ID    string   `json:"id" yaml:"id"`
	Type  NodeType `json:"type" yaml:"type"`
	Label string   `json:"label" yaml:"label"`

	// Period is a display string for company, education and achievement nodes.
	Period string `json:"period,omitempty" yaml:"period,omitempty"`

	// Achievement detail
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Impact       string   `json:"impact,omitempty" yaml:"impact,omitempty"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Company      string   `json:"company,omitempty" yaml:"company,omitempty"`
	Category     Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// Title is the achievement-flavoured alias of Label.
func (n GraphNode) Title() string {
	return n.Label
}
