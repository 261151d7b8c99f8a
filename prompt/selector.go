package prompt

import (
	"log/slog"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// Selector picks the prompt template for a record based on its derived
// category tags. Selection is deterministic: categories are tried in
// fixed priority order (safety first), and the general template is the
// fallback when no category matches.
type Selector struct {
	store  *Store
	logger *slog.Logger
}

// NewSelector creates a selector backed by the given store.
func NewSelector(store *Store) *Selector {
	return &Selector{
		store:  store,
		logger: slog.Default().With("component", "prompt-selector"),
	}
}

// Select returns the highest-priority template whose category the
// record carries, falling back to the general template. A store without
// a general template is misconfigured: Select returns
// ErrNoGeneralTemplate rather than guessing.
func (s *Selector) Select(record *core.MoleculeRecord) (*Template, error) {
	if !s.store.Has(core.CategoryGeneral) {
		return nil, ErrNoGeneralTemplate
	}
	for _, category := range core.CategoryPriority {
		if category == core.CategoryGeneral {
			continue
		}
		if record.HasCategory(category) && s.store.Has(category) {
			s.logger.Debug("selected template", "cid", record.CID, "category", category)
			return s.store.Get(category)
		}
	}
	s.logger.Debug("selected template", "cid", record.CID, "category", core.CategoryGeneral)
	return s.store.Get(core.CategoryGeneral)
}
