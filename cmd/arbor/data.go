package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/sqldataset"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/json"
	"github.com/sirupsen/logrus"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const defaultTable = "instances"

const inputFlagUsage = "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with the data (defaults to STDIN, interpreted as CSV)"

func (rcc *rootCmdConfig) readMetadata(path string) (*yaml.Metadata, error) {
	rcc.logger.WithField("path", path).Debug("Reading attributes and label from metadata...")
	md, err := yaml.ReadMetadataFromFile(path)
	if err != nil {
		return nil, err
	}
	rcc.logger.WithFields(logrus.Fields{
		"attributes": len(md.Attributes),
		"label":      md.Label.Name(),
	}).Debug("Metadata read")
	return md, nil
}

/*
readDataset reads the dataset at input, which may be a PostgreSQL connection
URL, a SQLite3 .db file, a CSV file or "" for CSV on STDIN. The table is only
used for SQL inputs.
*/
func (rcc *rootCmdConfig) readDataset(ctx context.Context, input, table string, md *yaml.Metadata) (*dataset.Dataset, error) {
	log := rcc.logger.WithField("input", input)
	var (
		d   *dataset.Dataset
		err error
	)
	switch {
	case input == "":
		log.Info("Reading dataset from STDIN...")
		d, err = csv.ReadDataset(os.Stdin, md.Attributes, md.Label)
	case strings.HasPrefix(input, "postgresql://") || strings.HasPrefix(input, "postgres://"):
		log.WithField("table", table).Info("Reading dataset from PostgreSQL...")
		d, err = readSQLDataset(ctx, "postgres", input, table, md)
	case strings.HasSuffix(input, ".db"):
		log.WithField("table", table).Info("Reading dataset from SQLite3...")
		d, err = readSQLDataset(ctx, "sqlite3", input, table, md)
	default:
		log.Info("Reading dataset from CSV file...")
		d, err = csv.ReadDatasetFromFilePath(input, md.Attributes, md.Label)
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	log.WithField("samples", d.Count()).Debug("Dataset read")
	return d, nil
}

func readSQLDataset(ctx context.Context, driver, dsn, table string, md *yaml.Metadata) (*dataset.Dataset, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return sqldataset.Load(ctx, db, table, md.Attributes, md.Label)
}

func loadTree(filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %w", filepath, err)
	}
	return t, nil
}

func outputTree(outputPath string, t *tree.Tree) error {
	f := os.Stdout
	if outputPath != "" {
		var err error
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return json.WriteJSONTree(t, f)
}
