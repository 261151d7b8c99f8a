package prompt

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Robotu-ai/robotu-molkit/core"
)

//go:embed templates/default/*_prompt.txt
var defaultTemplates embed.FS

const (
	defaultTemplateDir = "templates/default"
	templateSuffix     = "_prompt.txt"
)

// Store holds the registered prompt templates, one per audience
// category. The embedded defaults are loaded first; a template
// directory, when configured, overlays them so users can edit prompts
// without touching code. A new audience category is added by dropping a
// <category>_prompt.txt file into the directory.
type Store struct {
	templates map[core.Category]*Template
	dir       string
	logger    *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	dir             string
	includeDefaults bool
}

// WithTemplateDir overlays templates from <dir>/<category>_prompt.txt
// over the embedded defaults.
func WithTemplateDir(dir string) StoreOption {
	return func(o *storeOptions) {
		o.dir = dir
	}
}

// WithoutDefaults skips loading the embedded default templates. The
// store then only contains what the template directory (or Register)
// provides.
func WithoutDefaults() StoreOption {
	return func(o *storeOptions) {
		o.includeDefaults = false
	}
}

// NewStore creates a template store.
func NewStore(opts ...StoreOption) (*Store, error) {
	options := &storeOptions{includeDefaults: true}
	for _, opt := range opts {
		opt(options)
	}

	s := &Store{
		templates: make(map[core.Category]*Template),
		dir:       options.dir,
		logger:    slog.Default().With("component", "prompt-store"),
	}

	if options.includeDefaults {
		if err := s.loadDefaults(); err != nil {
			return nil, err
		}
	}
	if options.dir != "" {
		if err := s.loadDir(options.dir); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) loadDefaults() error {
	entries, err := defaultTemplates.ReadDir(defaultTemplateDir)
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}
	for _, entry := range entries {
		category, ok := categoryFromFilename(entry.Name())
		if !ok {
			continue
		}
		text, err := defaultTemplates.ReadFile(filepath.Join(defaultTemplateDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read embedded template %s: %w", entry.Name(), err)
		}
		s.templates[category] = &Template{Category: category, Text: string(text)}
	}
	return nil
}

func (s *Store) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// An absent directory just means no overrides.
			return nil
		}
		return fmt.Errorf("read template dir: %w", err)
	}
	for _, entry := range entries {
		category, ok := categoryFromFilename(entry.Name())
		if !ok {
			continue
		}
		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		s.logger.Debug("loaded template override", "category", category)
		s.templates[category] = &Template{Category: category, Text: string(text)}
	}
	return nil
}

// Register adds or replaces a template.
func (s *Store) Register(t *Template) {
	s.templates[t.Category] = t
}

// Get returns the template for a category.
// Returns ErrTemplateNotFound if the category has no template.
func (s *Store) Get(category core.Category) (*Template, error) {
	t, ok := s.templates[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, category)
	}
	return t, nil
}

// Has reports whether a template is registered for the category.
func (s *Store) Has(category core.Category) bool {
	_, ok := s.templates[category]
	return ok
}

// Categories lists the registered categories in priority order,
// followed by any file-provided categories outside the known set.
func (s *Store) Categories() []core.Category {
	var cats []core.Category
	listed := make(map[core.Category]bool)
	for _, c := range core.CategoryPriority {
		if s.Has(c) {
			cats = append(cats, c)
			listed[c] = true
		}
	}
	for c := range s.templates {
		if !listed[c] {
			cats = append(cats, c)
		}
	}
	return cats
}

// RestoreDefault writes the pristine embedded template for a category
// into the store's template directory, overwriting any edited copy, and
// re-registers it.
func (s *Store) RestoreDefault(category core.Category) error {
	if s.dir == "" {
		return fmt.Errorf("restore default: no template directory configured")
	}
	name := string(category) + templateSuffix
	text, err := defaultTemplates.ReadFile(filepath.Join(defaultTemplateDir, name))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoDefault, category)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), text, 0o644); err != nil {
		return err
	}
	s.templates[category] = &Template{Category: category, Text: string(text)}
	return nil
}

// categoryFromFilename maps "safety_prompt.txt" to CategorySafety.
func categoryFromFilename(name string) (core.Category, bool) {
	if !strings.HasSuffix(name, templateSuffix) {
		return "", false
	}
	base := strings.TrimSuffix(name, templateSuffix)
	if base == "" {
		return "", false
	}
	return core.Category(base), true
}
