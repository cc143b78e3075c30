package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// ReadSQL runs query and reads one example per result row. Column names
// become attribute names and label picks the label column as in ReadCSV.
//
// NULL is Missing. Integer, real and boolean columns keep their kind; text
// and blob cells are string Values and are not parsed.
func ReadSQL(ctx context.Context, db *sql.DB, query, label string) (Examples, Attributes, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, errors.Wrap(err, "running query")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading columns")
	}
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.TrimSpace(c)
	}
	order, err := columnOrder(header, label)
	if err != nil {
		return nil, nil, err
	}
	attrs := make(Attributes, len(order))
	for i, c := range order {
		attrs[i] = header[c]
	}
	if err := attrs.Validate("ReadSQL"); err != nil {
		return nil, nil, err
	}

	raw := make([]interface{}, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	var examples Examples
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, errors.Wrapf(err, "scanning row %d", len(examples)+1)
		}
		ex := make(Example, len(order))
		for i, c := range order {
			v, err := sqlValue(raw[c])
			if err != nil {
				return nil, nil, errors.NewValueError("ReadSQL",
					fmt.Sprintf("row %d column %q: %v", len(examples)+1, header[c], err))
			}
			ex[i] = v
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "iterating rows")
	}
	if len(examples) == 0 {
		return nil, nil, errors.NewModelError("ReadSQL", "no examples", errors.ErrEmptyData)
	}
	return examples, attrs, nil
}

func sqlValue(cell interface{}) (Value, error) {
	switch x := cell.(type) {
	case []byte:
		return String(string(x)), nil
	case time.Time:
		return String(x.UTC().Format(time.RFC3339)), nil
	default:
		return Of(x)
	}
}
