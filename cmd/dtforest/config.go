package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/dtforest/core/model"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/sklearn/ensemble"
	"github.com/YuminosukeSato/dtforest/sklearn/tree"
)

// Model kinds accepted in the configuration.
const (
	ModelTree   = "tree"
	ModelForest = "forest"
)

// Config holds the hyperparameters read from a YAML file. Fields left out
// keep the estimator defaults.
type Config struct {
	Model           string   `yaml:"model" validate:"oneof=tree forest"`
	Label           string   `yaml:"label"`
	MaxDepth        *int     `yaml:"max_depth" validate:"omitnil,min=-1"`
	Threshold       *float64 `yaml:"threshold" validate:"omitnil,gte=0"`
	NEstimators     *int     `yaml:"n_estimators" validate:"omitnil,min=1"`
	MaxAttributes   *int     `yaml:"max_attributes" validate:"omitnil,min=1"`
	RandomState     *int64   `yaml:"random_state"`
	NJobs           *int     `yaml:"n_jobs"`
	DistinctSubsets bool     `yaml:"distinct_subsets"`
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
	})
	return v
}

// DefaultConfig returns a configuration for a single unlimited-depth tree.
func DefaultConfig() *Config {
	return &Config{Model: ModelTree}
}

// LoadConfig reads a YAML configuration. An empty path returns DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML configuration. Unknown keys are
// rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that do not depend on the data.
func (c *Config) Validate() error {
	if c.Model == ModelTree && c.hasForestSettings() {
		return errors.NewValidationError("model", "forest settings given for a single tree", c.Model)
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return errors.NewValidationError(fe.Field(), fmt.Sprintf("must satisfy %s", rule), fe.Value())
	}
	return errors.Wrap(err, "validating config")
}

func (c *Config) hasForestSettings() bool {
	return c.NEstimators != nil || c.MaxAttributes != nil || c.RandomState != nil || c.NJobs != nil || c.DistinctSubsets
}

func (c *Config) treeOptions() []tree.Option {
	var opts []tree.Option
	if c.MaxDepth != nil {
		opts = append(opts, tree.WithMaxDepth(*c.MaxDepth))
	}
	if c.Threshold != nil {
		opts = append(opts, tree.WithThreshold(*c.Threshold))
	}
	return opts
}

func (c *Config) forestOptions() []ensemble.Option {
	opts := []ensemble.Option{ensemble.WithDistinctSubsets(c.DistinctSubsets)}
	if c.MaxDepth != nil {
		opts = append(opts, ensemble.WithMaxDepth(*c.MaxDepth))
	}
	if c.Threshold != nil {
		opts = append(opts, ensemble.WithThreshold(*c.Threshold))
	}
	if c.NEstimators != nil {
		opts = append(opts, ensemble.WithNEstimators(*c.NEstimators))
	}
	if c.MaxAttributes != nil {
		opts = append(opts, ensemble.WithMaxAttributes(*c.MaxAttributes))
	}
	if c.RandomState != nil {
		opts = append(opts, ensemble.WithRandomState(*c.RandomState))
	}
	if c.NJobs != nil {
		opts = append(opts, ensemble.WithNJobs(*c.NJobs))
	}
	return opts
}

// NewClassifier builds the configured, unfitted estimator.
func (c *Config) NewClassifier() model.Classifier {
	if c.Model == ModelForest {
		return ensemble.NewRandomForestClassifier(c.forestOptions()...)
	}
	return tree.NewDecisionTreeClassifier(c.treeOptions()...)
}
