package loam

// AchievementMetadata is the frontmatter of an achievement document.
// The markdown body becomes the achievement description.
type AchievementMetadata struct {
	ID       string `json:"id" mapstructure:"id"`
	Title    string `json:"title" mapstructure:"title"`
	Company  string `json:"company" mapstructure:"company"`
	Period   string `json:"period" mapstructure:"period"`
	Category string `json:"category" mapstructure:"category"`
	Impact   string `json:"impact" mapstructure:"impact"`

	// Technologies is either a list or a comma separated string.
	Technologies any `json:"technologies" mapstructure:"technologies"`

	// Hidden drops the document from the dataset.
	Hidden bool `json:"hidden" mapstructure:"hidden"`
}
