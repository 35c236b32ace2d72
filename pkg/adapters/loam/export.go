package loam

import (
	"context"
	"fmt"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/loam/pkg/core"
)

// Export writes one markdown document per achievement into repo, the format Loader reads back.
func Export(ctx context.Context, repo core.Repository, achievements []domain.Achievement) error {
	for _, a := range achievements {
		meta := core.Metadata{
			"title": a.Title,
		}
		set := func(key, value string) {
			if value != "" {
				meta[key] = value
			}
		}
		set("company", a.Company)
		set("period", a.Period)
		set("category", string(a.Category))
		set("impact", a.Impact)
		if len(a.Technologies) > 0 {
			meta["technologies"] = a.Technologies
		}

		doc := core.Document{
			ID:       a.ID + ".md",
			Content:  a.Description,
			Metadata: meta,
		}
		if err := repo.Save(ctx, doc); err != nil {
			return fmt.Errorf("save %s: %w", doc.ID, err)
		}
	}
	return nil
}
