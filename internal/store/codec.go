package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"jobmate/marketplace-service/internal/model"
)

const sequencesKey = "sequences"

// Encode serializes doc as indented JSON. Nil collections are written as
// empty arrays.
func Encode(doc *model.Document) ([]byte, error) {
	out := *doc
	out.Normalize()
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses stored content. The top level must be an object holding
// exactly the four collection arrays, optionally alongside the identifier
// sequences written by this service.
func Decode(location string, data []byte) (*model.Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Location: location, Err: err}
	}
	if raw == nil {
		return nil, &ParseError{Location: location, Err: fmt.Errorf("top level is not an object")}
	}

	for _, c := range model.AllCollections {
		v, ok := raw[string(c)]
		if !ok {
			return nil, &ParseError{Location: location, Err: fmt.Errorf("missing collection %q", c)}
		}
		if v = bytes.TrimSpace(v); len(v) == 0 || v[0] != '[' {
			return nil, &ParseError{Location: location, Err: fmt.Errorf("collection %q is not an array", c)}
		}
	}
	for k := range raw {
		if !isKnownKey(k) {
			return nil, &ParseError{Location: location, Err: fmt.Errorf("unexpected top-level key %q", k)}
		}
	}

	doc := &model.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &ParseError{Location: location, Err: err}
	}
	for c, n := range doc.Sequences {
		if !isCollection(string(c)) {
			return nil, &ParseError{Location: location, Err: fmt.Errorf("sequence for unknown collection %q", c)}
		}
		if n < 0 {
			return nil, &ParseError{Location: location, Err: fmt.Errorf("negative sequence %d for %q", n, c)}
		}
	}
	doc.Normalize()
	return doc, nil
}

func isKnownKey(k string) bool {
	return k == sequencesKey || isCollection(k)
}

func isCollection(k string) bool {
	for _, c := range model.AllCollections {
		if string(c) == k {
			return true
		}
	}
	return false
}
