package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hazyhaar/scoli/pkg/dataset"
	"github.com/hazyhaar/scoli/pkg/sqlgen"
)

func init() {
	Register(&metaAdapter{id: "authors", desc: "Authors of the studied works"})
	Register(&metaAdapter{id: "titles", desc: "Studied works"})
	Register(&metaAdapter{id: "characters", desc: "Characters of the studied works"})
}

// metaAdapter copies data/<id>.csv into the table of the same name.
type metaAdapter struct {
	id, desc string
}

func (a *metaAdapter) ID() string          { return a.id }
func (a *metaAdapter) Table() string       { return a.id }
func (a *metaAdapter) Description() string { return a.desc }
func (a *metaAdapter) DefaultURL() string  { return "" }

func (a *metaAdapter) Rows(ctx context.Context, env *Env, emit func(sqlgen.Row) error) error {
	log := env.logger().With("table", a.Table())
	path := filepath.Join(env.DataDir, a.id+".csv")

	return eachRow(ctx, path, env.MetaFormat, func(row dataset.Row) error {
		out := make(sqlgen.Row, 0, len(row.Columns))
		for _, c := range row.Columns {
			if !isIDColumn(c.Name) {
				out = append(out, sqlgen.Column{Name: c.Name, Value: c.Value})
				continue
			}
			v := strings.TrimSpace(c.Value)
			if v == "" {
				continue
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return &RecordError{Table: a.Table(), Line: row.Line, Column: c.Name,
					Err: fmt.Errorf("not an integer: %q", c.Value)}
			}
			out = append(out, sqlgen.Column{Name: c.Name, Value: n})
		}
		log.Debug("row", "line", row.Line, "columns", len(out))
		return emit(out)
	})
}

func isIDColumn(name string) bool {
	return name == "id" || strings.HasSuffix(name, "_id")
}
