/*
Package sqldataset loads datasets from SQL database tables.

The table holds an instance per row, with a column named after each
attribute and a column named after the label, all holding text values. The
queries only use double-quoted identifiers, so any database/sql driver for
SQLite3 or PostgreSQL will do.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

// Querier is the subset of *sql.DB and *sql.Tx used to load datasets.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

/*
Load takes a context, a Querier, a table name, the ordered attributes and
the label feature and returns a dataset with an instance per row of the
table, in the order the database returns them, or an error.

An error is returned if the table or a feature name contains '"', if a row
has a NULL value, or if a value is outside its feature domain.
*/
func Load(ctx context.Context, db Querier, table string, attributes []*feature.Feature, label *feature.Feature) (*dataset.Dataset, error) {
	query, err := selectStatement(table, attributes, label)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s table: %v", table, err)
	}
	defer rows.Close()
	instances := []*dataset.Instance{}
	columns := make([]sql.NullString, len(attributes)+1)
	dest := make([]interface{}, len(columns))
	for i := range columns {
		dest[i] = &columns[i]
	}
	for n := 0; rows.Next(); n++ {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning row %d: %v", n, err)
		}
		values := make([]string, len(attributes))
		for i, a := range attributes {
			if !columns[i].Valid {
				return nil, fmt.Errorf("row %d: NULL value for attribute %s", n, a.Name())
			}
			values[i] = columns[i].String
		}
		l := columns[len(attributes)]
		if !l.Valid {
			return nil, fmt.Errorf("row %d: NULL value for label %s", n, label.Name())
		}
		instances = append(instances, dataset.NewInstance(attributes, values, l.String))
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("reading %s table: %v", table, err)
	}
	return dataset.New(attributes, label, instances)
}

func selectStatement(table string, attributes []*feature.Feature, label *feature.Feature) (string, error) {
	var b strings.Builder
	b.WriteString("SELECT ")
	for _, a := range attributes {
		c, err := quote(a.Name())
		if err != nil {
			return "", err
		}
		b.WriteString(c)
		b.WriteString(", ")
	}
	c, err := quote(label.Name())
	if err != nil {
		return "", err
	}
	b.WriteString(c)
	t, err := quote(table)
	if err != nil {
		return "", err
	}
	b.WriteString(" FROM ")
	b.WriteString(t)
	return b.String(), nil
}

func quote(name string) (string, error) {
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
