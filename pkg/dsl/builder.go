package dsl

import (
	"fmt"

	"github.com/aretw0/careergraph/pkg/adapters/memory"
	"github.com/aretw0/careergraph/pkg/domain"
)

// Builder accumulates a career dataset.
type Builder struct {
	root     string
	ds       domain.Dataset
	declared map[string]bool
	last     string
}

// New starts a dataset whose root node is id.
func New(id string) *Builder {
	b := &Builder{root: id, declared: make(map[string]bool)}
	b.declare(domain.Declaration{ID: id, Label: id, Type: domain.NodeTypeRoot})
	return b
}

func (b *Builder) declare(d domain.Declaration) {
	if b.declared[d.ID] {
		return
	}
	b.declared[d.ID] = true
	b.ds.Declarations = append(b.ds.Declarations, d)
}

func (b *Builder) link(target string, t domain.EdgeType) {
	b.ds.Edges = append(b.ds.Edges, domain.GraphEdge{Source: b.root, Target: target, Type: t})
}

// SoftSkill declares a soft skill hanging off the root.
func (b *Builder) SoftSkill(id, label string) *Builder {
	b.declare(domain.Declaration{ID: id, Label: label, Type: domain.NodeTypeSoftSkill})
	b.link(id, domain.EdgeSoftSkill)
	return b
}

// Education declares a school and appends it to the timeline.
func (b *Builder) Education(id, label, period string) *Builder {
	return b.timeline(domain.Declaration{ID: id, Label: label, Type: domain.NodeTypeEducation, Period: period}, domain.EdgeEducation)
}

// Company declares an employer and appends it to the timeline.
func (b *Builder) Company(id, label, period string) *Builder {
	return b.timeline(domain.Declaration{ID: id, Label: label, Type: domain.NodeTypeCompany, Period: period}, domain.EdgeCareer)
}

func (b *Builder) timeline(d domain.Declaration, t domain.EdgeType) *Builder {
	if !b.declared[d.ID] {
		b.ds.Timeline = append(b.ds.Timeline, d.ID)
		b.link(d.ID, t)
	}
	b.declare(d)
	b.last = d.ID
	return b
}

// Achievement attaches an achievement to the most recent company or school.
// It returns an AchievementBuilder for the remaining fields.
func (b *Builder) Achievement(id, title string) *AchievementBuilder {
	b.ds.Achievements = append(b.ds.Achievements, domain.Achievement{ID: id, Title: title, Company: b.last})
	return &AchievementBuilder{Builder: b, index: len(b.ds.Achievements) - 1}
}

// Dataset returns the accumulated dataset.
func (b *Builder) Dataset() domain.Dataset {
	return b.ds
}

// Build compiles the dataset into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewLoader(b.ds)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
