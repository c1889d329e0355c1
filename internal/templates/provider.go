package templates

import "errors"

// Provider resolves template identifiers against the local store first and
// the builtin catalog second, mirroring the import-over-builtin priority of
// the template registry. The store is optional: without a database the
// provider serves builtins only.
type Provider struct {
	store *Store
}

func NewProvider(store *Store) *Provider {
	return &Provider{store: store}
}

// Load resolves a template by id. Returns ErrNotFound when the id matches
// neither a stored nor a builtin template.
func (p *Provider) Load(id string) (*Template, error) {
	if p.store != nil {
		t, err := p.store.Load(id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	if t, ok := Builtin(id); ok {
		return t, nil
	}
	return nil, ErrNotFound
}

// List returns builtin summaries followed by stored summaries.
func (p *Provider) List() ([]Summary, error) {
	var summaries []Summary
	for _, id := range BuiltinIDs() {
		t, _ := Builtin(id)
		summaries = append(summaries, Summarize(t, "builtin"))
	}
	if p.store != nil {
		local, err := p.store.List()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, local...)
	}
	return summaries, nil
}

// Store exposes the backing store for import/delete handlers; nil when the
// service runs without a database.
func (p *Provider) Store() *Store {
	return p.store
}
