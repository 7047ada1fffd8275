package query_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"jobmate/marketplace-service/internal/model"
	"jobmate/marketplace-service/internal/query"
)

func directory() []model.Professional {
	return []model.Professional{
		{ID: 1, Name: "Ada", Category: "technology", Specialization: "Compilers", Skills: "C++, Rust"},
		{ID: 2, Name: "Marie", Category: "healthcare", Specialization: "Radiology", Skills: "Research"},
		{ID: 3, Name: "Guido", Category: "technology", Specialization: "Language design", Skills: "Python, Data Analysis"},
		{ID: 4, Name: "Maria Montessori", Category: "education", Specialization: "Early childhood", Skills: "Curriculum"},
		{ID: 5, Name: "Tim", Category: "Technology", Specialization: "Web", Skills: "HTTP"},
	}
}

func ids(ps []model.Professional) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// ── FilterProfessionals ───────────────────────────────────────────────────

func TestFilterProfessionals_AllAndEmptySearchIsIdentity(t *testing.T) {
	all := directory()
	got := query.FilterProfessionals(all, "all", "")
	if !reflect.DeepEqual(got, all) {
		t.Errorf("FilterProfessionals(all, \"\") = %v, want input unchanged", ids(got))
	}
}

func TestFilterProfessionals_Cases(t *testing.T) {
	cases := []struct {
		name     string
		category string
		search   string
		want     []int
	}{
		{"category exact", "technology", "", []int{1, 3}},
		{"category case-sensitive", "Technology", "", []int{5}},
		{"search lowercase hits skills", "all", "python", []int{3}},
		{"search uppercase hits name", "all", "ADA", []int{1}},
		{"search hits specialization", "all", "radio", []int{2}},
		{"search matches several", "all", "mari", []int{2, 4}},
		{"category AND search", "technology", "rust", []int{1}},
		{"category AND search no overlap", "healthcare", "rust", []int{}},
		{"unknown category", "education", "python", []int{}},
		{"no match at all", "all", "haskell", []int{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := query.FilterProfessionals(directory(), c.category, c.search)
			if !reflect.DeepEqual(ids(got), c.want) {
				t.Errorf("FilterProfessionals(%q, %q) = %v, want %v", c.category, c.search, ids(got), c.want)
			}
		})
	}
}

func TestFilterProfessionals_EmptyResultIsNotNil(t *testing.T) {
	got := query.FilterProfessionals(directory()[:2], "education", "")
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
	raw, _ := json.Marshal(got)
	if string(raw) != "[]" {
		t.Errorf("empty result marshals to %s, want []", raw)
	}
}

func TestFilterProfessionals_DoesNotMutateInput(t *testing.T) {
	all := directory()
	_ = query.FilterProfessionals(all, "technology", "rust")
	if !reflect.DeepEqual(all, directory()) {
		t.Error("input slice was modified")
	}
}

// ── FilterJobPosts ─────────────────────────────────────────────────────────

func TestFilterJobPosts(t *testing.T) {
	posts := []model.JobPost{
		{ID: 1, Title: "Backend Engineer", Company: "Acme", Category: "technology", Description: "Go services"},
		{ID: 2, Title: "Math Tutor", Company: "School", Category: "education", Description: "Algebra"},
		{ID: 3, Title: "Data Engineer", Company: "GoFast", Category: "technology", Description: "Pipelines"},
	}
	got := query.FilterJobPosts(posts, "technology", "go")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FilterJobPosts(technology, go) = %+v", got)
	}
	if got := query.FilterJobPosts(posts, "all", ""); len(got) != 3 {
		t.Errorf("FilterJobPosts(all, \"\") len = %d, want 3", len(got))
	}
}

func TestWithStatus(t *testing.T) {
	bookings := []model.Booking{
		{ID: 1, Status: model.BookingPending},
		{ID: 2, Status: "confirmed"},
	}
	if got := query.BookingsWithStatus(bookings, model.BookingPending); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("BookingsWithStatus(pending) = %+v", got)
	}
	if got := query.BookingsWithStatus(bookings, ""); len(got) != 2 {
		t.Errorf("BookingsWithStatus(\"\") len = %d, want 2", len(got))
	}

	posts := []model.JobPost{{ID: 1, Status: "closed"}}
	got := query.JobPostsWithStatus(posts, model.JobPostActive)
	if got == nil || len(got) != 0 {
		t.Errorf("JobPostsWithStatus(active) = %#v, want empty non-nil", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !query.ContainsFold("", "anything") {
		t.Error("empty term should match")
	}
	if !query.ContainsFold("RUST", "go", "c++, rust") {
		t.Error("should match second field ignoring case")
	}
	if query.ContainsFold("java", "go", "rust") {
		t.Error("should not match")
	}
	if query.ContainsFold("x") {
		t.Error("no fields should not match a non-empty term")
	}
}

// ── Lookups ───────────────────────────────────────────────────────────────

func TestFindProfessional(t *testing.T) {
	p, ok := query.FindProfessional(directory(), 3)
	if !ok || p.Name != "Guido" {
		t.Errorf("FindProfessional(3) = %+v, %v", p, ok)
	}
	if _, ok := query.FindProfessional(directory(), 42); ok {
		t.Error("FindProfessional(42) should be absent")
	}
	if _, ok := query.FindProfessional(nil, 1); ok {
		t.Error("FindProfessional on nil should be absent")
	}
}

func TestFindOthers(t *testing.T) {
	if o, ok := query.FindOrganization([]model.Organization{{ID: 2, Name: "Acme"}}, 2); !ok || o.Name != "Acme" {
		t.Errorf("FindOrganization = %+v, %v", o, ok)
	}
	if _, ok := query.FindBooking([]model.Booking{{ID: 1}}, 2); ok {
		t.Error("FindBooking(2) should be absent")
	}
	if j, ok := query.FindJobPost([]model.JobPost{{ID: 5, Title: "Nurse"}}, 5); !ok || j.Title != "Nurse" {
		t.Errorf("FindJobPost = %+v, %v", j, ok)
	}
}

// ── EnrichBookings ────────────────────────────────────────────────────────

func TestEnrichBookings(t *testing.T) {
	bookings := []model.Booking{
		{ID: 1, ProfessionalID: 1, OrganizationName: "Acme"},
		{ID: 2, ProfessionalID: 99, OrganizationName: "Ghost Corp"},
		{ID: 3, ProfessionalID: 3, OrganizationName: "PSF"},
	}
	original := append([]model.Booking(nil), bookings...)

	got := query.EnrichBookings(bookings, directory())
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (dangling bookings are kept)", len(got))
	}
	if got[0].Professional == nil || got[0].Professional.Name != "Ada" {
		t.Errorf("booking 1 professional = %+v", got[0].Professional)
	}
	if got[1].Professional != nil {
		t.Errorf("booking 2 professional = %+v, want nil", got[1].Professional)
	}
	if got[2].Professional == nil || got[2].Professional.Name != "Guido" {
		t.Errorf("booking 3 professional = %+v", got[2].Professional)
	}
	if !reflect.DeepEqual(bookings, original) {
		t.Error("EnrichBookings modified its input")
	}
}

func TestEnrichBookings_JSONShape(t *testing.T) {
	got := query.EnrichBookings([]model.Booking{{ID: 1, ProfessionalID: 7, Status: model.BookingPending}}, nil)
	raw, err := json.Marshal(got[0])
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	for _, want := range []string{`"id":1`, `"professional_id":7`, `"status":"pending"`, `"professional":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}
}
