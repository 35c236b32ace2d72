/*
Package dsl provides a fluent Go builder for career datasets.

It lets callers declare a profile in code instead of YAML, which is handy for
tests and for embedding a dataset in another program. Edges from the root are
added as nodes are declared, and achievements are attached to the company or
school they were declared on.

Example usage:

	ds := dsl.New("Mannan").
		SoftSkill("communication", "Communication").
		Education("Bilkent", "Bilkent University", "2014 - 2019").
		Company("Intenseye", "Intenseye", "2021 - Present").
		Achievement("design-system", "Design System").
		Category(domain.CategoryDesignSystem).
		Dataset()

	loader, err := memory.NewLoader(ds)
	// ... pass loader to careergraph.WithDatasetSource(...)
*/
package dsl
