package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("split chosen", "attribute", "student", "gain", 0.12)
	testLogger.Info("tree grown", OperationKey, OperationFit)
	testLogger.Error("fit failed", fmt.Errorf("empty data"), ErrorCodeKey, ErrorEmptyData)

	require.NotEmpty(t, buffer.String())
	assert.True(t, testLogger.ContainsMessage("split chosen"))
	assert.True(t, testLogger.ContainsField("attribute", "student"))
	assert.True(t, testLogger.ContainsField("gain", 0.12))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "empty data"))
	assert.True(t, testLogger.ContainsField(ErrorCodeKey, ErrorEmptyData))

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(ModelNameKey, "DecisionTreeClassifier", ComponentKey, "tree")
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "DecisionTreeClassifier"))
	assert.True(t, testLogger.ContainsField(ComponentKey, "tree"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationFit))
}

func TestTestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("hidden")
	testLogger.Info("shown")
	assert.False(t, testLogger.ContainsMessage("hidden"))
	assert.True(t, testLogger.ContainsMessage("shown"))
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("not emitted")
	logger.With(ModelNameKey, "RandomForestClassifier").Info("forest grown", TreesKey, 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "forest grown", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "RandomForestClassifier", entry[ModelNameKey])
	assert.Equal(t, 4.0, entry[TreesKey])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	logger.Error("fit failed", errors.NewValueError("Fit", "bad input"), OperationKey, OperationFit)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "dtforest: Fit: bad input", entry["error"])
	assert.Equal(t, OperationFit, entry[OperationKey])
}

func TestRouteWarnings(t *testing.T) {
	var buf bytes.Buffer
	RouteWarnings(NewZerologLogger(&buf, LevelDebug))
	defer RouteWarnings(nil)

	errors.Warn(errors.NewUnknownVoteWarning(3))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "UnknownVoteWarning", entry["type"])
	assert.Equal(t, 3.0, entry["trees"])
}

func TestRouteWarningsToSlog(t *testing.T) {
	prev := GetLogger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "warn"))
	RouteWarnings(GetLogger().With(RunIDKey, "3f2a9c1e"))
	defer RouteWarnings(nil)

	errors.Warn(errors.NewUnknownVoteWarning(3))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "WARN", entry["severity"])
	assert.Equal(t, "all 3 trees returned an unknown prediction", entry["message"])
	assert.Equal(t, "*errors.UnknownVoteWarning", entry[ErrorTypeKey])
	assert.Equal(t, "3f2a9c1e", entry[RunIDKey])
}

func TestSetupLogger(t *testing.T) {
	prev := GetLogger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "debug"))

	GetLogger().Error("fit failed", errors.NewModelError("Fit", "empty data", errors.ErrEmptyData))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "fit failed", entry["message"])
	assert.Equal(t, "ERROR", entry["severity"])
	assert.Contains(t, entry, StacktraceAttrKey)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestConsoleLoggerWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, LevelInfo)
	logger.Info("tree grown", TreeDepthKey, 3)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "tree grown")
	assert.Contains(t, out, "tree.depth=3")
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "hidden")
}
