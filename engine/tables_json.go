package engine

import (
	"encoding/json"
	"fmt"
	"io"

	"minchess/board"
)

// tablesJSON is the on-disk form of Tables, keyed by lower-case kind name.
type tablesJSON struct {
	Values map[string]int       `json:"values"`
	PST    map[string][8][8]int `json:"pst"`
}

func kindByName(name string) (board.Kind, bool) {
	for _, k := range board.Kinds {
		if k.String() == name {
			return k, true
		}
	}
	return board.NoKind, false
}

// WriteJSON writes t in the format read by ReadTables.
func (t *Tables) WriteJSON(w io.Writer) error {
	out := tablesJSON{Values: map[string]int{}, PST: map[string][8][8]int{}}
	for _, k := range board.Kinds {
		out.Values[k.String()] = t.Value[k]
		out.PST[k.String()] = t.PST[k]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ReadTables reads tables written by WriteJSON. Kinds missing from the input
// keep their default value and table.
func ReadTables(r io.Reader) (*Tables, error) {
	var in tablesJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}
	t := *DefaultTables
	for name, v := range in.Values {
		k, ok := kindByName(name)
		if !ok {
			return nil, fmt.Errorf("decoding tables: unknown piece kind %q", name)
		}
		t.Value[k] = v
	}
	for name, pst := range in.PST {
		k, ok := kindByName(name)
		if !ok {
			return nil, fmt.Errorf("decoding tables: unknown piece kind %q", name)
		}
		t.PST[k] = pst
	}
	return &t, nil
}
