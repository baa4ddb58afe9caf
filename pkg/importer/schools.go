package importer

import (
	"context"
	"path/filepath"

	"github.com/hazyhaar/scoli/pkg/dataset"
	"github.com/hazyhaar/scoli/pkg/schoolname"
	"github.com/hazyhaar/scoli/pkg/sqlgen"
)

func init() {
	Register(&schoolsAdapter{})
}

type schoolsAdapter struct{}

func (a *schoolsAdapter) ID() string          { return "schools" }
func (a *schoolsAdapter) Table() string       { return "schools" }
func (a *schoolsAdapter) Description() string { return "Romanian schools with normalized names" }
func (a *schoolsAdapter) DefaultURL() string  { return "" }

func (a *schoolsAdapter) Rows(ctx context.Context, env *Env, emit func(sqlgen.Row) error) error {
	log := env.logger().With("table", a.Table())
	codes := env.Counties.Invert()
	path := filepath.Join(env.DataDir, "schools.csv")

	return eachRow(ctx, path, env.SchoolsFormat, func(row dataset.Row) error {
		norm := func(column string) (string, error) {
			raw, _ := row.Get(column)
			out, err := schoolname.Normalize(raw)
			if err != nil {
				return "", &RecordError{Table: a.Table(), Line: row.Line, Column: column, Err: err}
			}
			return out, nil
		}

		name, err := norm("name")
		if err != nil {
			return err
		}
		shortName, err := norm("short_name")
		if err != nil {
			return err
		}
		if shortName == name {
			shortName = ""
		}
		county, err := norm("county_id")
		if err != nil {
			return err
		}
		if code, ok := codes[county]; ok {
			county = code
		}

		log.Debug("school", "line", row.Line, "name", name, "short_name", shortName, "county_id", county)
		return emit(sqlgen.Row{
			{Name: "name", Value: name},
			{Name: "short_name", Value: shortName},
			{Name: "county_id", Value: county},
		})
	})
}
