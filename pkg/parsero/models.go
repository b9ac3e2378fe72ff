package parsero

import (
	"fmt"
	"sort"

	"github.com/cloudwego/eino/components/model"

	"github.com/parsero-dev/parsero/pkg/parsero/registry"
)

// DefaultModelName is the entry preferred when a model set must be reduced
// to a single model for graph compilation.
const DefaultModelName = "default"

// ModelSet holds the chat models available to procedure bodies: either a
// single model or a name-keyed mapping. When a mapping was supplied, every
// procedure receives the whole set and indexes into it by name at its own
// discretion; the engine does not restrict which entries a procedure may use.
//
// The zero ModelSet is empty and safe to use; Get and Default simply find
// nothing.
type ModelSet struct {
	models *registry.Registry[string, model.BaseChatModel]
}

// SingleModel builds a set holding one model under DefaultModelName.
func SingleModel(m model.BaseChatModel) ModelSet {
	ms := ModelSet{models: registry.New[string, model.BaseChatModel]()}
	ms.models.Register(DefaultModelName, m)
	return ms
}

// NamedModels builds a set from a name-keyed mapping.
func NamedModels(m map[string]model.BaseChatModel) ModelSet {
	ms := ModelSet{models: registry.New[string, model.BaseChatModel]()}
	ms.models.RegisterMany(m)
	return ms
}

// Get returns the model registered under name.
func (ms ModelSet) Get(name string) (model.BaseChatModel, bool) {
	if ms.models == nil {
		return nil, false
	}
	return ms.models.Get(name)
}

// Names returns the registered model names, sorted.
func (ms ModelSet) Names() []string {
	if ms.models == nil {
		return nil
	}
	names := ms.models.Keys()
	sort.Strings(names)
	return names
}

// Len returns the number of registered models.
func (ms ModelSet) Len() int {
	if ms.models == nil {
		return 0
	}
	return ms.models.Len()
}

// Default picks the model used when compiling for the external graph engine:
// the DefaultModelName entry if present, else the lexicographically first
// name (Go map iteration order would make "first" nondeterministic).
//
// The returned warning is non-empty when the choice was ambiguous, i.e. more
// than one entry exists and none is named DefaultModelName. Surfacing the
// warning is the caller's decision; nothing is logged here.
func (ms ModelSet) Default() (m model.BaseChatModel, name string, warning string) {
	names := ms.Names()
	if len(names) == 0 {
		return nil, "", ""
	}
	if m, ok := ms.Get(DefaultModelName); ok {
		return m, DefaultModelName, ""
	}
	name = names[0]
	m, _ = ms.Get(name)
	if len(names) > 1 {
		warning = fmt.Sprintf("no %q model among %d entries; using %q", DefaultModelName, len(names), name)
	}
	return m, name, warning
}
