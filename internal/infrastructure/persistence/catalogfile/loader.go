// Package catalogfile loads the ingredient catalog from its JSON document.
// The production catalog is embedded in the binary; a config override path
// can point at an external file with the same shape.
package catalogfile

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/proteinempire/ingredients/internal/domain/ingredient"
	"github.com/proteinempire/ingredients/internal/ports/outbound"
	"github.com/proteinempire/ingredients/pkg/errors"

	_ "embed"
)

//go:embed data/ingredients.json
var embedded []byte

// catalogDocument is the on-disk catalog shape
type catalogDocument struct {
	Ingredients map[string]ingredient.Ingredient `json:"ingredients"`
	Groups      map[string][]string              `json:"groups"`
}

// Repository implements outbound.CatalogRepository
type Repository struct {
	path   string
	logger *zap.Logger
}

// NewRepository creates a catalog repository. An empty path loads the
// embedded catalog.
func NewRepository(path string, logger *zap.Logger) outbound.CatalogRepository {
	return &Repository{
		path:   path,
		logger: logger.Named("catalog"),
	}
}

// Load parses the catalog document and builds the immutable catalog
func (r *Repository) Load(ctx context.Context) (*ingredient.Catalog, error) {
	data := embedded
	source := "embedded"
	if r.path != "" {
		fileData, err := os.ReadFile(r.path)
		if err != nil {
			return nil, errors.NewCatalogError("read catalog file", err).
				WithMetadata("path", r.path)
		}
		data = fileData
		source = r.path
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewCatalogError("parse catalog", err).
			WithMetadata("source", source)
	}

	catalog := ingredient.NewCatalog(doc.Ingredients, doc.Groups)

	r.logger.Info("Catalog loaded",
		zap.String("source", source),
		zap.Int("ingredients", catalog.Len()),
		zap.Int("groups", len(catalog.GroupNames())),
	)

	return catalog, nil
}
