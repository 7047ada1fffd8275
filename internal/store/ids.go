package store

import "jobmate/marketplace-service/internal/model"

// NextID reserves the next identifier for collection c and records it in
// doc.Sequences, so the value is persisted with the record it labels.
//
// The counter never moves backwards: it starts from the largest of the
// stored sequence, the highest existing id and the collection length. On a
// store that has never lost records this equals LengthID.
func NextID(doc *model.Document, c model.Collection) int {
	last := doc.Sequences[c]
	if m := doc.MaxID(c); m > last {
		last = m
	}
	if n := doc.Len(c); n > last {
		last = n
	}
	next := last + 1
	if doc.Sequences == nil {
		doc.Sequences = make(map[model.Collection]int, len(model.AllCollections))
	}
	doc.Sequences[c] = next
	return next
}

// LengthID is the historical scheme: collection length plus one. It is not
// stable across deletions and is kept only for comparison with old data.
func LengthID(doc *model.Document, c model.Collection) int {
	return doc.Len(c) + 1
}
