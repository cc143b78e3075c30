package main

import (
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/core/model"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
)

// trainingConfig holds the flags shared by grow and evaluate.
type trainingConfig struct {
	*rootCmdConfig
	dataInput  string
	label      string
	configPath string
	modelKind  string
	query      string
}

func (tc *trainingConfig) loadConfig() (*Config, error) {
	cfg, err := LoadConfig(tc.configPath)
	if err != nil {
		return nil, err
	}
	if tc.modelKind != "" {
		cfg.Model = tc.modelKind
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if tc.label != "" {
		cfg.Label = tc.label
	}
	return cfg, nil
}

// readExamples reads a CSV file, or in when path is empty, or runs the query
// against the SQLite database at path when a query was given.
func (tc *trainingConfig) readExamples(ctx context.Context, in io.Reader, path, label string) (dataset.Examples, dataset.Attributes, error) {
	logger := log.GetLoggerWithName("cli")
	source := path
	if source == "" {
		source = "STDIN"
	}
	logger.Info("Reading examples", log.PathKey, source)

	var (
		examples dataset.Examples
		attrs    dataset.Attributes
		err      error
	)
	switch {
	case tc.query != "":
		examples, attrs, err = readSQLite(ctx, path, tc.query, label)
	case path == "":
		examples, attrs, err = dataset.ReadCSV(in, label)
	default:
		examples, attrs, err = dataset.ReadCSVFile(path, label)
	}
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Examples read",
		log.PathKey, source,
		log.SamplesKey, len(examples),
		log.FeaturesKey, attrs.NumFeatures(),
		log.LabelKey, attrs.Label())
	return examples, attrs, nil
}

func readSQLite(ctx context.Context, path, query, label string) (dataset.Examples, dataset.Attributes, error) {
	if path == "" {
		return nil, nil, errors.NewValidationError("input", "a SQLite database path is required with --query", path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}
	defer db.Close()
	examples, attrs, err := dataset.ReadSQL(ctx, db, query, label)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "querying %s", path)
	}
	return examples, attrs, nil
}

// train reads the training examples and fits the configured model on them.
// The examples are returned so they can be evaluated on without reading the
// input again.
func (tc *trainingConfig) train(ctx context.Context, in io.Reader, cfg *Config) (model.Classifier, dataset.Examples, dataset.Attributes, error) {
	examples, attrs, err := tc.readExamples(ctx, in, tc.dataInput, cfg.Label)
	if err != nil {
		return nil, nil, nil, err
	}
	clf := cfg.NewClassifier()
	start := time.Now()
	if cf, ok := clf.(model.ContextFitter); ok {
		err = cf.FitContext(ctx, examples, attrs)
	} else {
		err = clf.Fit(examples, attrs)
	}
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "fitting %s", cfg.Model)
	}
	state := clf.GetState()
	log.GetLoggerWithName("cli").Info("Model fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, state.NExamples,
		log.FeaturesKey, state.NAttributes-1,
		log.HyperParamsKey, state.Params,
		log.DurationMsKey, time.Since(start).Milliseconds())
	return clf, examples, attrs, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "creating %s", path)
	}
	return f, f.Close, nil
}
