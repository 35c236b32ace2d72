// Package loam reads achievement documents (markdown with frontmatter) through
// the Loam library and merges them into a base dataset.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
)

// Loader implements ports.DatasetSource: the base dataset plus every achievement document.
// A document whose id matches a base achievement replaces it.
type Loader struct {
	Repo *loam.TypedRepository[AchievementMetadata]
	Base ports.DatasetSource
}

// New creates a Loam adapter over repo.
func New(repo *loam.TypedRepository[AchievementMetadata], base ports.DatasetSource) *Loader {
	return &Loader{
		Repo: repo,
		Base: base,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string, base ports.DatasetSource) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric frontmatter consistent across markdown and JSON documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
		loam.WithForceTemp(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[AchievementMetadata](repo), base), nil
}

// Load implements ports.DatasetSource.
func (l *Loader) Load(ctx context.Context) (domain.Dataset, error) {
	var ds domain.Dataset
	if l.Base != nil {
		base, err := l.Base.Load(ctx)
		if err != nil {
			return domain.Dataset{}, err
		}
		ds = base
	}

	achievements, err := l.Achievements(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}

	index := make(map[string]int, len(ds.Achievements))
	for i, a := range ds.Achievements {
		index[a.ID] = i
	}
	for _, a := range achievements {
		if i, ok := index[a.ID]; ok {
			ds.Achievements[i] = a
			continue
		}
		index[a.ID] = len(ds.Achievements)
		ds.Achievements = append(ds.Achievements, a)
	}
	return ds, nil
}

// Achievements lists the achievement documents sorted by id.
func (l *Loader) Achievements(ctx context.Context) ([]domain.Achievement, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	out := make([]domain.Achievement, 0, len(docs))
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		if doc.Data.Hidden {
			continue
		}

		techs, err := technologies(doc.Data.Technologies)
		if err != nil {
			return nil, fmt.Errorf("%s: technologies: %w", doc.ID, err)
		}
		title := doc.Data.Title
		if title == "" {
			title = id
		}
		out = append(out, domain.Achievement{
			ID:           id,
			Title:        title,
			Description:  strings.TrimSpace(doc.Content),
			Impact:       doc.Data.Impact,
			Technologies: techs,
			Company:      doc.Data.Company,
			Period:       doc.Data.Period,
			Category:     domain.Category(doc.Data.Category),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Watch streams the ids of changed documents until ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// technologies accepts a YAML list of scalars or a comma separated string.
func technologies(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		var out []string
		if err := mapstructure.WeakDecode(v, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
