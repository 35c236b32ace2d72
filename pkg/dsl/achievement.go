package dsl

import "github.com/aretw0/careergraph/pkg/domain"

// AchievementBuilder configures the achievement last added. It embeds the
// Builder so declarations can continue in the same chain.
type AchievementBuilder struct {
	*Builder
	index int
}

func (a *AchievementBuilder) current() *domain.Achievement {
	return &a.ds.Achievements[a.index]
}

// Describe sets the achievement description and impact statement.
func (a *AchievementBuilder) Describe(description, impact string) *AchievementBuilder {
	c := a.current()
	c.Description = description
	c.Impact = impact
	return a
}

// Uses appends technologies.
func (a *AchievementBuilder) Uses(tech ...string) *AchievementBuilder {
	c := a.current()
	c.Technologies = append(c.Technologies, tech...)
	return a
}

// During sets the period.
func (a *AchievementBuilder) During(period string) *AchievementBuilder {
	a.current().Period = period
	return a
}

// Category sets the category.
func (a *AchievementBuilder) Category(c domain.Category) *AchievementBuilder {
	a.current().Category = c
	return a
}

// At moves the achievement to another company or school.
func (a *AchievementBuilder) At(company string) *AchievementBuilder {
	a.current().Company = company
	return a
}
