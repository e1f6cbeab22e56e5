/*
Package csv reads and writes datasets as CSV streams.

The header or first row names the columns: every attribute and the label
must appear exactly once, in any order. Every other row holds the values of
an instance for those columns.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
ReadDataset takes an io.Reader for a CSV stream, the ordered attributes and
the label feature and returns a dataset with the instances parsed from the
reader or an error. Errors on a row report its line number.
*/
func ReadDataset(reader io.Reader, attributes []*feature.Feature, label *feature.Feature) (*dataset.Dataset, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	columns, labelColumn, err := parseHeader(header, attributes, label)
	if err != nil {
		return nil, err
	}
	instances := []*dataset.Instance{}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		inst, err := parseRow(row, attributes, columns, label, labelColumn)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", l, err)
		}
		instances = append(instances, inst)
	}
	return dataset.New(attributes, label, instances)
}

/*
ReadDatasetFromFilePath takes a filepath string, the ordered attributes and
the label feature, opens the file to which the filepath points to and uses
ReadDataset to return a dataset or an error read from it. If the filepath
is "" os.Stdin is used instead.
*/
func ReadDatasetFromFilePath(filepath string, attributes []*feature.Feature, label *feature.Feature) (*dataset.Dataset, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := ReadDataset(f, attributes, label)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return d, nil
}

/*
WriteDataset takes a writer and a dataset and dumps the dataset to the
writer in CSV format, with a column per attribute in declared order followed
by the label column.
*/
func WriteDataset(writer io.Writer, d *dataset.Dataset) error {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(d.Attributes())+1)
	for _, a := range d.Attributes() {
		record = append(record, a.Name())
	}
	record = append(record, d.Label().Name())
	err := w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV header: %v", err)
	}
	for i, inst := range d.Instances() {
		record = append(inst.Values(), inst.Label())
		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("writing CSV row for instance %d: %v", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// parseHeader returns the column of each attribute and the column of the
// label.
func parseHeader(header []string, attributes []*feature.Feature, label *feature.Feature) ([]int, int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := byName[name]; ok {
			return nil, 0, fmt.Errorf("parsing header: column %s repeated", name)
		}
		byName[name] = i
	}
	if len(header) != len(attributes)+1 {
		return nil, 0, fmt.Errorf("parsing header: expected %d columns, got %d", len(attributes)+1, len(header))
	}
	columns := make([]int, len(attributes))
	for i, a := range attributes {
		c, ok := byName[a.Name()]
		if !ok {
			return nil, 0, fmt.Errorf("parsing header: missing column for attribute %s", a.Name())
		}
		columns[i] = c
	}
	labelColumn, ok := byName[label.Name()]
	if !ok {
		return nil, 0, fmt.Errorf("parsing header: missing column for label %s", label.Name())
	}
	return columns, labelColumn, nil
}

func parseRow(row []string, attributes []*feature.Feature, columns []int, label *feature.Feature, labelColumn int) (*dataset.Instance, error) {
	values := make([]string, len(attributes))
	for i, a := range attributes {
		v := row[columns[i]]
		if ok, err := a.Valid(v); !ok {
			return nil, fmt.Errorf("%w: %v", dataset.ErrUnknownValue, err)
		}
		values[i] = v
	}
	l := row[labelColumn]
	if label.IndexOf(l) < 0 {
		return nil, fmt.Errorf("%w: %q for label %s", dataset.ErrUnknownLabel, l, label.Name())
	}
	return dataset.NewInstance(attributes, values, l), nil
}
