package lexicon

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/custodia-labs/wortlens/internal/core/domain"
)

// DefaultModelName is the model loaded when none is configured.
const DefaultModelName = "de_core_lexicon"

//go:embed models/*.toml
var bundledModels embed.FS

// Bundled returns the raw TOML of a model compiled into the binary.
func Bundled(name string) ([]byte, error) {
	data, err := bundledModels.ReadFile(path.Join("models", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("bundled model %s: %w", name, domain.ErrNotFound)
	}
	return data, nil
}

// BundledNames lists the models compiled into the binary.
func BundledNames() []string {
	entries, err := fs.ReadDir(bundledModels, "models")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}
