package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrTrailingData is returned when a note payload is followed by more input.
var ErrTrailingData = errors.New("unexpected data after note")

// DecodeNewNote parses exactly one JSON object into a NewNote.
// Unknown fields and anything after the object are rejected.
func DecodeNewNote(data []byte) (NewNote, error) {
	var n NewNote
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&n); err != nil {
		return NewNote{}, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return NewNote{}, ErrTrailingData
	}
	return n, nil
}
