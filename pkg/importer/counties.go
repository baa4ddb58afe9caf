package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hazyhaar/scoli/pkg/dataset"
	"github.com/hazyhaar/scoli/pkg/sqlgen"
)

// DefaultCountiesURL lists the county codes of Romania.
const DefaultCountiesURL = "https://gist.githubusercontent.com/mgax/7468143/raw/f04289cdd0219b28447fd84f610cc383a756f060/coduri-judete.csv"

// Counties maps a county code (e.g. "CJ") to its name.
type Counties map[string]string

// Invert returns the name → code lookup.
func (c Counties) Invert() map[string]string {
	inv := make(map[string]string, len(c))
	for code, name := range c {
		inv[name] = code
	}
	return inv
}

// Codes returns the county codes in ascending order.
func (c Counties) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// FetchCounties downloads the county table into workDir and parses its
// "cod" and "județ" columns.
func FetchCounties(ctx context.Context, url, workDir string, f dataset.Format) (Counties, error) {
	if err := ensureDir(workDir); err != nil {
		return nil, err
	}
	path := filepath.Join(workDir, "counties.csv")
	if err := downloadFile(ctx, url, path); err != nil {
		return nil, fmt.Errorf("fetch counties: %w", err)
	}
	return parseCounties(ctx, path, f)
}

func parseCounties(ctx context.Context, path string, f dataset.Format) (Counties, error) {
	counties := make(Counties)
	err := eachRow(ctx, path, f, func(row dataset.Row) error {
		code, _ := row.Get("cod")
		name, _ := row.Get("județ")
		code, name = strings.TrimSpace(code), strings.TrimSpace(name)
		if code == "" || name == "" {
			return fmt.Errorf("counties CSV schema changed, line %d looks like: %v", row.Line, row.Columns)
		}
		counties[code] = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counties, nil
}

func init() {
	Register(&countiesAdapter{})
}

type countiesAdapter struct{}

func (a *countiesAdapter) ID() string          { return "counties" }
func (a *countiesAdapter) Table() string       { return "counties" }
func (a *countiesAdapter) Description() string { return "Romanian county codes and names" }
func (a *countiesAdapter) DefaultURL() string  { return DefaultCountiesURL }

func (a *countiesAdapter) Rows(ctx context.Context, env *Env, emit func(sqlgen.Row) error) error {
	for _, row := range sqlgen.FromStringRecord(env.Counties) {
		if err := emit(row); err != nil {
			return err
		}
	}
	return nil
}
