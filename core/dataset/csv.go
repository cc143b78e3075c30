package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// ReadCSV reads a header row of attribute names followed by one example per
// row. Cells are converted with Parse, so "?" marks a missing value.
//
// When label is empty the last column is the label. Otherwise the named
// column is moved to the end and the other columns keep their order.
// Empty or duplicated header names are renamed (X0, name_0, ...).
func ReadCSV(r io.Reader, label string) (Examples, Attributes, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		var parseErr *csv.ParseError
		if errors.As(df.Err, &parseErr) {
			return nil, nil, errors.Wrap(df.Err, "reading CSV")
		}
		// header only or no input at all
		return nil, nil, errors.NewModelError("ReadCSV", df.Err.Error(), errors.ErrEmptyData)
	}

	header := df.Names()
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	order, err := columnOrder(header, label)
	if err != nil {
		return nil, nil, err
	}
	attrs := make(Attributes, len(order))
	for i, c := range order {
		attrs[i] = header[c]
	}
	if err := attrs.Validate("ReadCSV"); err != nil {
		return nil, nil, err
	}

	df = df.Select(order)
	if df.Err != nil {
		return nil, nil, errors.Wrap(df.Err, "reordering columns")
	}
	records := df.Records()[1:]

	examples := make(Examples, len(records))
	nanCells := 0
	for r, row := range records {
		ex := make(Example, len(row))
		for i, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), "nan") {
				nanCells++
			}
			ex[i] = Parse(cell)
		}
		examples[r] = ex
	}
	if nanCells > 0 {
		errors.Warn(errors.NewDataConversionWarning("float", "missing",
			fmt.Sprintf("%d NaN cells have no equality and were read as missing", nanCells)))
	}
	if len(examples) == 0 {
		return nil, nil, errors.NewModelError("ReadCSV", "no examples", errors.ErrEmptyData)
	}
	return examples, attrs, nil
}

// ReadCSVFile opens path and calls ReadCSV. An empty path reads stdin.
func ReadCSVFile(path, label string) (Examples, Attributes, error) {
	if path == "" {
		return ReadCSV(os.Stdin, label)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	examples, attrs, err := ReadCSV(f, label)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	return examples, attrs, nil
}

func columnOrder(header []string, label string) ([]int, error) {
	labelCol := len(header) - 1
	if label != "" {
		labelCol = -1
		for i, h := range header {
			if h == label {
				labelCol = i
				break
			}
		}
		if labelCol < 0 {
			return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("label column %q not found in header", label))
		}
	}
	order := make([]int, 0, len(header))
	for i := range header {
		if i != labelCol {
			order = append(order, i)
		}
	}
	return append(order, labelCol), nil
}
