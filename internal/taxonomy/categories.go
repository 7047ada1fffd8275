// Package taxonomy holds the fixed job category reference used for display
// hints and loose validation. Categories on records are never enforced
// against it.
package taxonomy

import "sort"

// categories is initialized once and never mutated; callers get copies.
var categories = map[string][]string{
	"education":   {"Teacher", "Professor", "Tutor", "Instructor", "Curriculum Developer", "Educational Consultant"},
	"technology":  {"Software Developer", "Data Scientist", "Web Developer", "IT Support", "System Administrator", "UI/UX Designer"},
	"healthcare":  {"Nurse", "Medical Assistant", "Therapist", "Healthcare Consultant", "Medical Researcher", "Pharmacist"},
	"business":    {"Business Analyst", "Project Manager", "Marketing Specialist", "HR Consultant", "Financial Advisor", "Operations Manager"},
	"creative":    {"Graphic Designer", "Content Writer", "Photographer", "Video Editor", "Marketing Designer", "Social Media Manager"},
	"engineering": {"Civil Engineer", "Mechanical Engineer", "Electrical Engineer", "Software Engineer", "Quality Assurance Engineer", "Environmental Engineer"},
	"consulting":  {"Management Consultant", "Strategy Consultant", "Training Consultant", "Process Improvement Specialist", "Change Management Specialist", "Organizational Development Consultant"},
}

// JobCategories returns the category → example role titles mapping.
func JobCategories() map[string][]string {
	out := make(map[string][]string, len(categories))
	for k, titles := range categories {
		out[k] = append([]string(nil), titles...)
	}
	return out
}

// Categories returns the category keys in alphabetical order.
func Categories() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether category is one of the fixed keys.
func IsKnown(category string) bool {
	_, ok := categories[category]
	return ok
}

// Titles returns the example titles for category, or nil if unknown.
func Titles(category string) []string {
	titles, ok := categories[category]
	if !ok {
		return nil
	}
	return append([]string(nil), titles...)
}
