package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "DecisionTreeClassifier.Fit",
			kind:    "empty data",
			err:     ErrEmptyData,
			wantMsg: "dtforest: DecisionTreeClassifier.Fit: empty data: empty data",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "dtforest: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
			if tt.err != nil && !Is(err, tt.err) {
				t.Error("wrapped error should be reachable with Is")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		axis int
		want string
	}{
		{0, "dtforest: Fit: dimension mismatch on axis 0 (examples). Expected 10, got 9"},
		{1, "dtforest: Fit: dimension mismatch on axis 1 (attributes). Expected 10, got 9"},
	}
	for _, tt := range tests {
		err := NewDimensionError("Fit", 10, 9, tt.axis)
		if err.Error() != tt.want {
			t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
		}
		var dimErr *DimensionError
		if !As(err, &dimErr) {
			t.Error("Error should be castable to *DimensionError")
		}
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("RandomForestClassifier", "Predict")

	want := "dtforest: RandomForestClassifier: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("max_attributes", "must not exceed the number of non-label attributes", 7)

	want := "dtforest: validation failed for parameter 'max_attributes': must not exceed the number of non-label attributes (got: 7)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatal("Error should be castable to *ValidationError")
	}
	if valErr.ParamName != "max_attributes" {
		t.Errorf("ParamName = %v", valErr.ParamName)
	}
}

func TestWarnings(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewDegenerateSplitWarning("rain", 3, 3, 0))
	Warn(NewUnknownVoteWarning(4))

	if len(got) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(got))
	}
	wantSplit := "split on attribute 'rain' (index 3) over 3 samples has non-positive information gain 0"
	if got[0].Error() != wantSplit {
		t.Errorf("Error() = %q, want %q", got[0].Error(), wantSplit)
	}
	if got[1].Error() != "all 4 trees returned an unknown prediction" {
		t.Errorf("unexpected warning text: %q", got[1].Error())
	}
}

func TestZerologWarnFuncTakesPrecedence(t *testing.T) {
	var handled, routed int
	SetWarningHandler(func(w error) { handled++ })
	SetLoggerWarnFunc(func(w error) { routed++ })
	defer func() {
		SetLoggerWarnFunc(nil)
		SetWarningHandler(func(w error) {})
	}()

	Warn(NewUndefinedMetricWarning("accuracy", "all predictions unknown", 0))

	if routed != 1 || handled != 0 {
		t.Errorf("routed=%d handled=%d, want 1 and 0", routed, handled)
	}
}

func TestWrapfAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: partition for value %q", "BestQuestion", "Y")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), `in BestQuestion: partition for value "Y"`) {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}
}
