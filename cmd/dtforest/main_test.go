package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
	"github.com/YuminosukeSato/dtforest/sklearn/ensemble"
	"github.com/YuminosukeSato/dtforest/sklearn/tree"
)

const restaurantCSV = `will_wait,reservation,long_wait,weekend,rain
Y,N,Y,Y,Y
N,N,N,N,Y
N,N,N,Y,N
Y,N,Y,N,Y
Y,Y,Y,Y,N
N,N,N,Y,N
Y,N,Y,Y,N
N,N,N,N,Y
Y,N,N,Y,N
N,N,Y,N,N
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runWithInput(t, nil, args...)
}

func runWithInput(t *testing.T, in io.Reader, args ...string) (string, string, error) {
	t.Helper()
	prev := log.GetLogger()
	t.Cleanup(func() {
		log.SetLogger(prev)
		log.RouteWarnings(nil)
	})

	var stdout, stderr bytes.Buffer
	cmd := cliParser()
	if in != nil {
		cmd.SetIn(in)
	}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dtforest v0.3.0\n", out)
}

func TestGrowCmdTree(t *testing.T) {
	data := writeFile(t, "restaurant.csv", restaurantCSV)
	out, _, err := run(t, "grow", "-i", data, "-l", "will_wait")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "DecisionTreeClassifier(max_depth=-1)", lines[0])
	assert.Equal(t, "long_wait?", lines[1])
}

func TestGrowCmdForestToFile(t *testing.T) {
	data := writeFile(t, "restaurant.csv", restaurantCSV)
	cfg := writeFile(t, "forest.yaml", `
model: forest
label: will_wait
n_estimators: 3
max_attributes: 2
max_depth: 2
random_state: 42
`)
	output := filepath.Join(t.TempDir(), "forest.txt")

	out, _, err := run(t, "grow", "-i", data, "-c", cfg, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written),
		"RandomForestClassifier(n_estimators=3, max_attributes=2, max_depth=2)"))
	assert.Contains(t, string(written), "tree 2 [")
}

func TestEvaluateCmd(t *testing.T) {
	data := writeFile(t, "restaurant.csv", restaurantCSV)
	out, _, err := run(t, "evaluate", "-i", data, "-l", "will_wait")
	require.NoError(t, err)

	assert.Contains(t, out, "examples: 10\n")
	assert.Contains(t, out, "accuracy: 0.9000\n")
	assert.Contains(t, out, "unknown rate: 0.0000\n")
	assert.Contains(t, out, "N\t5\t0\t0\n")
	assert.Contains(t, out, "Y\t1\t4\t0\n")
}

func TestEvaluateCmdStdin(t *testing.T) {
	out, _, err := runWithInput(t, strings.NewReader(restaurantCSV), "evaluate", "-l", "will_wait")
	require.NoError(t, err)
	assert.Contains(t, out, "examples: 10\n")
	assert.Contains(t, out, "accuracy: 0.9000\n")

	test := writeFile(t, "test.csv", `will_wait,reservation,long_wait,weekend,rain
Y,N,Y,Y,Y
N,N,N,N,Y
`)
	out, _, err = runWithInput(t, strings.NewReader(restaurantCSV), "evaluate", "-l", "will_wait", "-t", test)
	require.NoError(t, err)
	assert.Contains(t, out, "examples: 2\n")
	assert.Contains(t, out, "accuracy: 1.0000\n")
}

func TestGrowCmdStdin(t *testing.T) {
	out, _, err := runWithInput(t, strings.NewReader(restaurantCSV), "grow", "-l", "will_wait")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "DecisionTreeClassifier(max_depth=-1)\nlong_wait?\n"))

	_, _, err = runWithInput(t, strings.NewReader(""), "grow")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func writeSQLite(t *testing.T, csvText string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restaurant.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	_, err = db.Exec("CREATE TABLE visits (" + strings.ReplaceAll(lines[0], ",", " TEXT, ") + " TEXT)")
	require.NoError(t, err)
	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		args := make([]interface{}, len(cells))
		for i, c := range cells {
			args[i] = c
		}
		_, err = db.Exec("INSERT INTO visits VALUES (?, ?, ?, ?, ?)", args...)
		require.NoError(t, err)
	}
	return path
}

func TestEvaluateCmdSQLite(t *testing.T) {
	db := writeSQLite(t, restaurantCSV)
	out, _, err := run(t, "evaluate", "-i", db, "-q", "SELECT * FROM visits", "-l", "will_wait")
	require.NoError(t, err)
	assert.Contains(t, out, "examples: 10\n")
	assert.Contains(t, out, "accuracy: 0.9000\n")

	_, _, err = run(t, "grow", "-q", "SELECT * FROM visits")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))

	_, _, err = run(t, "grow", "-i", filepath.Join(t.TempDir(), "absent.db"), "-q", "SELECT 1")
	assert.Error(t, err)
}

func TestEvaluateCmdUnknowns(t *testing.T) {
	train := writeFile(t, "train.csv", restaurantCSV)
	test := writeFile(t, "test.csv", `will_wait,reservation,long_wait,weekend,rain
Y,N,maybe,Y,Y
N,N,N,N,Y
`)
	out, _, err := run(t, "evaluate", "-i", train, "-t", test, "-l", "will_wait")
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy: 0.5000\n")
	assert.Contains(t, out, "unknown rate: 0.5000\n")
}

func TestEvaluateCmdMismatchedTestSet(t *testing.T) {
	train := writeFile(t, "train.csv", restaurantCSV)
	test := writeFile(t, "test.csv", "will_wait,reservation,rain\nY,N,Y\n")
	_, _, err := run(t, "evaluate", "-i", train, "-t", test, "-l", "will_wait")
	assert.Error(t, err)
}

func TestGrowCmdErrors(t *testing.T) {
	data := writeFile(t, "restaurant.csv", restaurantCSV)

	_, _, err := run(t, "grow", "-i", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, _, err = run(t, "grow", "-i", data, "-l", "nope")
	assert.Error(t, err)

	_, _, err = run(t, "grow", "-i", data, "-m", "forest")
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr), "default max_attributes exceeds four attributes: %v", err)
	assert.Equal(t, "max_attributes", valErr.ParamName)

	_, _, err = run(t, "grow", "-i", data, "-m", "bush")
	assert.True(t, errors.As(err, &valErr))

	_, _, err = run(t, "--log-format", "xml", "grow", "-i", data)
	assert.True(t, errors.As(err, &valErr))
}

func TestJSONLogging(t *testing.T) {
	data := writeFile(t, "restaurant.csv", restaurantCSV)
	_, stderr, err := run(t, "--log-format", "json", "-v", "evaluate", "-i", data, "-l", "will_wait")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"Model evaluated"`)
	assert.Contains(t, stderr, `"severity":"INFO"`)
	assert.Contains(t, stderr, `"run.id":"`)
	assert.NotContains(t, stderr, "dtforest-Warning")

	var warnings []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["severity"] == "WARN" {
			warnings = append(warnings, entry)
		}
	}
	require.NotEmpty(t, warnings)
	for _, w := range warnings {
		assert.Equal(t, "*errors.DegenerateSplitWarning", w[log.ErrorTypeKey])
		assert.NotEmpty(t, w[log.RunIDKey])
	}
}

func TestConsoleWarningsCarryRunID(t *testing.T) {
	data := writeFile(t, "restaurant.csv", restaurantCSV)
	_, stderr, err := run(t, "grow", "-i", data, "-l", "will_wait")
	require.NoError(t, err)
	assert.Contains(t, stderr, "WRN")
	assert.Contains(t, stderr, "type=DegenerateSplitWarning")
	assert.Contains(t, stderr, "run.id=")
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
model: forest
label: play
max_depth: -1
threshold: 0.001
n_estimators: 10
max_attributes: 3
random_state: 7
n_jobs: 2
distinct_subsets: true
`))
	require.NoError(t, err)
	assert.Equal(t, ModelForest, cfg.Model)
	assert.Equal(t, "play", cfg.Label)
	assert.Equal(t, -1, *cfg.MaxDepth)
	assert.Equal(t, 0.001, *cfg.Threshold)
	assert.Equal(t, 10, *cfg.NEstimators)
	assert.Equal(t, 3, *cfg.MaxAttributes)
	assert.Equal(t, int64(7), *cfg.RandomState)
	assert.Equal(t, 2, *cfg.NJobs)
	assert.True(t, cfg.DistinctSubsets)

	clf, ok := cfg.NewClassifier().(*ensemble.RandomForestClassifier)
	require.True(t, ok)
	params := clf.GetParams()
	assert.Equal(t, 10, params["n_estimators"])
	assert.Equal(t, 3, params["max_attributes"])
	assert.Equal(t, -1, params["max_depth"])
	assert.Equal(t, true, params["distinct_subsets"])
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	dt, ok := cfg.NewClassifier().(*tree.DecisionTreeClassifier)
	require.True(t, ok)
	assert.Equal(t, -1, dt.GetParams()["max_depth"])

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ModelTree, cfg.Model)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		param string
	}{
		{"unknown model", "model: bush", "model"},
		{"forest settings on a tree", "model: tree\nn_estimators: 3", "model"},
		{"zero trees", "model: forest\nn_estimators: 0", "n_estimators"},
		{"zero attributes", "model: forest\nmax_attributes: 0", "max_attributes"},
		{"bad depth", "max_depth: -4", "max_depth"},
		{"negative threshold", "threshold: -1", "threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.yaml))
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}

	_, err := ParseConfig(strings.NewReader("max_dpeth: 3"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
