// Package nlp resolves and loads the NLP model used for part-of-speech tagging.
package nlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/wortlens/internal/adapters/driven/nlp/lexicon"
	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/core/ports/driven"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.ModelLoader = (*Loader)(nil)

// Model sources reported in ModelInfo.Source.
const (
	SourceFile    = "file"
	SourceBundled = "bundled"
	SourceRemote  = "remote"
)

const (
	defaultTimeout = 30 * time.Second
	maxModelBytes  = 16 << 20
)

// Config configures model resolution.
type Config struct {
	// Name is the model identifier. Defaults to lexicon.DefaultModelName.
	Name string

	// Dir holds downloaded and user-provided models as <name>.toml.
	Dir string

	// URL is fetched when no local copy exists. Empty disables the remote fetch.
	URL string

	// DisableBundled skips the model compiled into the binary.
	DisableBundled bool

	// Timeout bounds the remote fetch.
	Timeout time.Duration
}

// Loader resolves the model from disk, the binary, or a remote URL.
type Loader struct {
	config Config
	client *http.Client
}

// NewLoader creates a loader.
func NewLoader(cfg Config) *Loader {
	if cfg.Name == "" {
		cfg.Name = lexicon.DefaultModelName
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Loader{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Path returns the on-disk location of the model.
func (l *Loader) Path() string {
	if l.config.Dir == "" {
		return ""
	}
	return filepath.Join(l.config.Dir, l.config.Name+".toml")
}

// Load resolves the model. Local sources are tried first; the remote URL is
// fetched once and saved so later starts load it from disk.
func (l *Loader) Load(ctx context.Context) (driven.Tagger, driven.ModelInfo, error) {
	var failures []error

	if path := l.Path(); path != "" {
		model, err := l.loadFile(path)
		switch {
		case err == nil:
			logger.Debug("Loaded model %s from %s", model.ModelName(), path)
			return model, info(model, SourceFile, path), nil
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("No model file at %s", path)
		default:
			logger.Warn("Ignoring model file %s: %v", path, err)
			failures = append(failures, err)
		}
	}

	if !l.config.DisableBundled {
		data, err := lexicon.Bundled(l.config.Name)
		if err == nil {
			model, perr := lexicon.Parse(data)
			if perr == nil {
				logger.Debug("Loaded bundled model %s", model.ModelName())
				return model, info(model, SourceBundled, ""), nil
			}
			err = perr
		}
		failures = append(failures, err)
	}

	if l.config.URL != "" {
		logger.Info("Fetching model %s from %s", l.config.Name, l.config.URL)
		model, path, err := l.fetch(ctx)
		if err == nil {
			return model, info(model, SourceRemote, path), nil
		}
		failures = append(failures, err)
	}

	if len(failures) == 0 {
		return nil, driven.ModelInfo{Name: l.config.Name}, fmt.Errorf("model %s: %w: no source configured",
			l.config.Name, domain.ErrModelUnavailable)
	}
	return nil, driven.ModelInfo{Name: l.config.Name}, fmt.Errorf("model %s: %w: %w",
		l.config.Name, domain.ErrModelUnavailable, errors.Join(failures...))
}

// Pull fetches the model from the remote URL and saves it, replacing any local copy.
func (l *Loader) Pull(ctx context.Context) (driven.ModelInfo, error) {
	if l.config.URL == "" {
		return driven.ModelInfo{}, fmt.Errorf("model %s: no model URL configured: %w",
			l.config.Name, domain.ErrInvalidInput)
	}
	model, path, err := l.fetch(ctx)
	if err != nil {
		return driven.ModelInfo{}, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}
	return info(model, SourceRemote, path), nil
}

func (l *Loader) loadFile(path string) (*lexicon.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return lexicon.Parse(data)
}

// fetch downloads, validates and stores the model.
func (l *Loader) fetch(ctx context.Context) (*lexicon.Model, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.config.URL, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching model: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxModelBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read model: %w", err)
	}
	if len(data) > maxModelBytes {
		return nil, "", fmt.Errorf("model exceeds %d bytes", maxModelBytes)
	}

	model, err := lexicon.Parse(data)
	if err != nil {
		return nil, "", err
	}

	path := l.Path()
	if path == "" {
		return model, "", nil
	}
	if err := writeFileAtomic(path, data); err != nil {
		logger.Warn("Model %s loaded but not saved: %v", model.ModelName(), err)
		return model, "", nil
	}
	logger.Info("Saved model %s to %s", model.ModelName(), path)
	return model, path, nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func info(m *lexicon.Model, source, path string) driven.ModelInfo {
	return driven.ModelInfo{
		Name:     m.ModelName(),
		Language: m.Language(),
		Version:  m.Version(),
		Source:   source,
		Path:     path,
		Entries:  m.Entries(),
		Rules:    m.Rules(),
	}
}
