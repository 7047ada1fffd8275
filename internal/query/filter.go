// Package query derives read-only views over loaded collections. Nothing in
// here mutates its inputs; results preserve insertion order.
package query

import (
	"strings"

	"jobmate/marketplace-service/internal/model"
)

// AllCategories disables category filtering.
const AllCategories = "all"

// FilterProfessionals keeps professionals whose category equals category
// exactly (unless it is "all") and, when search is non-empty, whose name,
// specialization or skills contain search case-insensitively.
//
// The result is never nil, so an empty match serializes as [].
func FilterProfessionals(all []model.Professional, category, search string) []model.Professional {
	out := make([]model.Professional, 0, len(all))
	for _, p := range all {
		if !matchesCategory(p.Category, category) {
			continue
		}
		if !ContainsFold(search, p.Name, p.Specialization, p.Skills) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterJobPosts applies the same rules to job posts, searching title,
// company and description.
func FilterJobPosts(all []model.JobPost, category, search string) []model.JobPost {
	out := make([]model.JobPost, 0, len(all))
	for _, j := range all {
		if !matchesCategory(j.Category, category) {
			continue
		}
		if !ContainsFold(search, j.Title, j.Company, j.Description) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// BookingsWithStatus keeps bookings in status. An empty status keeps all.
func BookingsWithStatus(all []model.Booking, status model.BookingStatus) []model.Booking {
	out := make([]model.Booking, 0, len(all))
	for _, b := range all {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// JobPostsWithStatus keeps job posts in status. An empty status keeps all.
func JobPostsWithStatus(all []model.JobPost, status model.JobPostStatus) []model.JobPost {
	out := make([]model.JobPost, 0, len(all))
	for _, j := range all {
		if status == "" || j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

// ContainsFold reports whether term appears in any of fields, ignoring case.
// An empty term matches everything.
func ContainsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func matchesCategory(value, category string) bool {
	return category == AllCategories || value == category
}
