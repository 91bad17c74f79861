package engine

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/board.schema.json
var boardSchemaJSON string

var (
	boardSchemaOnce sync.Once
	boardSchema     *jsonschema.Schema
	boardSchemaErr  error
)

func compiledBoardSchema() (*jsonschema.Schema, error) {
	boardSchemaOnce.Do(func() {
		boardSchema, boardSchemaErr = jsonschema.CompileString("board.schema.json", boardSchemaJSON)
	})
	return boardSchema, boardSchemaErr
}

// boardWire is the persisted form: row-major values, null for empty cells.
type boardWire struct {
	RowCount    int    `json:"rowCount"`
	ColumnCount int    `json:"columnCount"`
	Values      []*int `json:"values"`
}

// MarshalJSON encodes the board as {rowCount, columnCount, values}.
func (b *Board) MarshalJSON() ([]byte, error) {
	w := boardWire{
		RowCount:    b.rows,
		ColumnCount: b.cols,
		Values:      make([]*int, len(b.cells)),
	}
	for i, blk := range b.cells {
		if blk.IsEmpty() {
			continue
		}
		v := int(blk)
		w.Values[i] = &v
	}
	return json.Marshal(w)
}

// UnmarshalJSON replaces the board with the decoded document.
// The board's size is taken from the document.
func (b *Board) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeBoard(data)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

// DecodeBoard parses and validates a board document. Schema violations,
// dimensions outside 1..MaxCells cells and a values array whose length is
// not rowCount*columnCount are rejected before the board is allocated.
func DecodeBoard(data []byte) (*Board, error) {
	schema, err := compiledBoardSchema()
	if err != nil {
		return nil, fmt.Errorf("engine: compile board schema: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("engine: decode board: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("engine: invalid board document: %w", err)
	}

	var w boardWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("engine: decode board: %w", err)
	}

	if err := checkSize(w.RowCount, w.ColumnCount); err != nil {
		return nil, err
	}
	if len(w.Values) != w.RowCount*w.ColumnCount {
		return nil, fmt.Errorf("%w: got %d values for %dx%d", ErrSizeMismatch, len(w.Values), w.RowCount, w.ColumnCount)
	}
	b, err := NewBoard(w.RowCount, w.ColumnCount)
	if err != nil {
		return nil, err
	}
	for i, v := range w.Values {
		if v == nil {
			continue
		}
		if *v <= 0 {
			return nil, fmt.Errorf("%w: %d at index %d", ErrInvalidBlock, *v, i)
		}
		b.put(Pt(i/b.cols, i%b.cols), Block(*v))
	}
	return b, nil
}
