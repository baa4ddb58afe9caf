package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/hazyhaar/scoli/pkg/dataset"
	"github.com/hazyhaar/scoli/pkg/sqlgen"
	"github.com/hazyhaar/scoli/pkg/store"
)

// TableOrder is the order in which tables are written to the output.
var TableOrder = []string{"counties", "schools", "authors", "titles", "characters"}

// Applier persists the rows of a build.
type Applier interface {
	Apply(ctx context.Context, runID string, tables []store.Table) error
}

// BuildOptions configures Build. Zero formats fall back to dataset.Comma,
// or dataset.Semicolon for the schools.
type BuildOptions struct {
	DataDir string
	Output  string

	// CountiesURL overrides both the source database and the default URL.
	CountiesURL string
	Sources     *SourceDB
	Store       Applier

	CountiesFormat dataset.Format
	SchoolsFormat  dataset.Format
	MetaFormat     dataset.Format

	Logger *slog.Logger
}

// Build fetches the counties, runs every table adapter and writes the INSERT
// statements to opts.Output with a manifest beside it. The output is
// replaced atomically, so a failed build leaves no partial file.
func Build(ctx context.Context, opts BuildOptions) (*Manifest, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	log = log.With("run", runID.String())

	countiesURL, err := resolveCountiesURL(opts)
	if err != nil {
		return nil, err
	}

	outDir := filepath.Dir(opts.Output)
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(outDir, ".scoli-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	log.Info("fetching counties", "url", countiesURL)
	counties, err := FetchCounties(ctx, countiesURL, workDir, orDefault(opts.CountiesFormat, dataset.Comma))
	if err != nil {
		return nil, err
	}
	log.Info("counties fetched", "count", len(counties))

	env := &Env{
		DataDir:       opts.DataDir,
		Counties:      counties,
		SchoolsFormat: orDefault(opts.SchoolsFormat, dataset.Semicolon),
		MetaFormat:    orDefault(opts.MetaFormat, dataset.Comma),
		Logger:        log,
	}
	tables, err := collect(ctx, env, TableOrder)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		RunID:       runID.String(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Output:      filepath.Base(opts.Output),
		CountiesURL: countiesURL,
	}
	size, err := writeOutput(opts.Output, tables, m)
	if err != nil {
		return nil, err
	}
	if err := writeManifest(outDir, m); err != nil {
		return nil, err
	}
	log.Info("output written", "path", opts.Output, "statements", m.Rows(), "size", humanize.Bytes(uint64(size)))

	if opts.Store != nil {
		if err := opts.Store.Apply(ctx, m.RunID, tables); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		log.Info("store updated", "tables", len(tables))
	}
	return m, nil
}

func orDefault(f, def dataset.Format) dataset.Format {
	if f == (dataset.Format{}) {
		return def
	}
	return f
}

func resolveCountiesURL(opts BuildOptions) (string, error) {
	if opts.CountiesURL != "" {
		return opts.CountiesURL, nil
	}
	if opts.Sources == nil {
		return DefaultCountiesURL, nil
	}
	if err := opts.Sources.Seed(All()); err != nil {
		return "", err
	}
	url, err := opts.Sources.GetURL("counties")
	if err != nil {
		return "", err
	}
	if url == "" {
		return DefaultCountiesURL, nil
	}
	return url, nil
}

// collect runs the adapters for ids concurrently and returns their tables in
// the order of ids. The first failure cancels the others.
func collect(ctx context.Context, env *Env, ids []string) ([]store.Table, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := make([]Adapter, len(ids))
	for i, id := range ids {
		a, err := Get(id)
		if err != nil {
			return nil, err
		}
		run[i] = a
	}

	tables := make([]store.Table, len(ids))
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, a := range run {
		tables[i].Name = a.Table()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := a.Rows(ctx, env, func(row sqlgen.Row) error {
				tables[i].Rows = append(tables[i].Rows, row)
				return nil
			})
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", a.ID(), err)
				cancel()
				return
			}
			env.logger().Debug("adapter done", "adapter", a.ID(), "rows", len(tables[i].Rows))
		}()
	}
	wg.Wait()

	// Report the root cause rather than a sibling's cancellation.
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// writeOutput writes the statements to a temp file next to path and renames
// it into place. It fills m.Tables and returns the output size.
func writeOutput(path string, tables []store.Table, m *Manifest) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".metadata-*.sql")
	if err != nil {
		return 0, fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, t := range tables {
		n, err := sqlgen.Write(tmp, t.Name, t.Rows)
		if err != nil {
			tmp.Close()
			return 0, err
		}
		m.Tables = append(m.Tables, TableCount{Name: t.Name, Rows: n})
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("rename output: %w", err)
	}
	return info.Size(), nil
}
