package store_test

import (
	"testing"

	"jobmate/marketplace-service/internal/model"
	"jobmate/marketplace-service/internal/store"
)

func TestNextID_MatchesLengthOnFreshDocument(t *testing.T) {
	doc := model.NewDocument()
	for want := 1; want <= 3; want++ {
		if got := store.LengthID(doc, model.Professionals); got != want {
			t.Errorf("LengthID = %d, want %d", got, want)
		}
		id := store.NextID(doc, model.Professionals)
		if id != want {
			t.Errorf("NextID = %d, want %d", id, want)
		}
		doc.Professionals = append(doc.Professionals, model.Professional{ID: id})
	}
}

// Removing a record must not make the next id collide with a surviving one.
func TestNextID_StableAfterRemoval(t *testing.T) {
	doc := model.NewDocument()
	for i := 0; i < 3; i++ {
		doc.Bookings = append(doc.Bookings, model.Booking{ID: store.NextID(doc, model.Bookings)})
	}
	doc.Bookings = doc.Bookings[1:] // ids 2, 3 remain

	if got := store.LengthID(doc, model.Bookings); got != 3 {
		t.Fatalf("LengthID = %d, want 3 (collides with existing id)", got)
	}
	if got := store.NextID(doc, model.Bookings); got != 4 {
		t.Errorf("NextID = %d, want 4", got)
	}
}

func TestNextID_SequencesAreIndependent(t *testing.T) {
	doc := model.NewDocument()
	store.NextID(doc, model.Professionals)
	store.NextID(doc, model.Professionals)
	if got := store.NextID(doc, model.JobPosts); got != 1 {
		t.Errorf("NextID(job_posts) = %d, want 1", got)
	}
	if doc.Sequences[model.Professionals] != 2 || doc.Sequences[model.JobPosts] != 1 {
		t.Errorf("Sequences = %v", doc.Sequences)
	}
}

// A stale or hand-edited counter below the existing ids must not be trusted.
func TestNextID_IgnoresStaleSequence(t *testing.T) {
	doc := model.NewDocument()
	doc.Organizations = []model.Organization{{ID: 7}}
	doc.Sequences = map[model.Collection]int{model.Organizations: 2}
	if got := store.NextID(doc, model.Organizations); got != 8 {
		t.Errorf("NextID = %d, want 8", got)
	}
}
