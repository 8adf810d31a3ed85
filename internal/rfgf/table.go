// Package rfgf reads license records exported by the subsoil license
// registry query service.
package rfgf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Export is the response of the registry query endpoint. Values are stored
// column-major: Values[column][row].
type Export struct {
	Result struct {
		Data Table `json:"data"`
	} `json:"result"`
}

// Table is the tabular payload of an Export.
type Table struct {
	Cols   [][]interface{}   `json:"cols"`
	Rows   []json.RawMessage `json:"rows"`
	Values [][]interface{}   `json:"values"`
}

// Load reads an Export from a file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode reads an Export from r and returns its table.
func Decode(r io.Reader) (*Table, error) {
	var exp Export
	if err := json.NewDecoder(r).Decode(&exp); err != nil {
		return nil, fmt.Errorf("decode registry export: %w", err)
	}

	return &exp.Result.Data, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Cols)
}

// ColumnName returns the header of column c.
func (t *Table) ColumnName(c int) string {
	if c < 0 || c >= len(t.Cols) || len(t.Cols[c]) == 0 {
		return ""
	}

	return stringify(t.Cols[c][0])
}

// Value returns cell (c, row) as text. Missing and null cells are empty.
func (t *Table) Value(c, row int) string {
	if c < 0 || c >= len(t.Values) || row < 0 || row >= len(t.Values[c]) {
		return ""
	}

	return stringify(t.Values[c][row])
}

// Fprint writes every row as "column: value" lines framed by dashes.
func (t *Table) Fprint(w io.Writer) error {
	sep := strings.Repeat("-", 63)
	for i := 0; i < t.Len(); i++ {
		if _, err := fmt.Fprintln(w, sep); err != nil {
			return err
		}
		for c := 0; c < t.NumColumns(); c++ {
			if _, err := fmt.Fprintf(w, "%s: %s\n", t.ColumnName(c), t.Value(c, i)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, sep); err != nil {
			return err
		}
	}

	return nil
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
