package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/hazyhaar/scoli/pkg/dataset"
	"github.com/hazyhaar/scoli/pkg/sqlgen"
)

// Adapter produces the rows of one output table.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "schools").
	ID() string
	// Table returns the SQL table the rows are inserted into.
	Table() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the default remote source URL, or "" for datasets
	// read from the data directory.
	DefaultURL() string
	// Rows streams the table rows to emit. An emit error aborts the adapter.
	Rows(ctx context.Context, env *Env, emit func(sqlgen.Row) error) error
}

// Env is what adapters share during one build.
type Env struct {
	DataDir       string
	Counties      Counties
	SchoolsFormat dataset.Format
	MetaFormat    dataset.Format
	Logger        *slog.Logger
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
