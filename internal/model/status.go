package model

import "fmt"

// BookingStatus is set once when a booking is created. No transitions are
// modeled; the value is informational.
type BookingStatus string

const BookingPending BookingStatus = "pending"

// JobPostStatus is set once when a job is posted.
type JobPostStatus string

const JobPostActive JobPostStatus = "active"

// ParseBookingStatus converts a raw string to a BookingStatus, returning an
// error for unknown values.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	switch st {
	case BookingPending:
		return st, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// ParseJobPostStatus converts a raw string to a JobPostStatus.
func ParseJobPostStatus(s string) (JobPostStatus, error) {
	st := JobPostStatus(s)
	switch st {
	case JobPostActive:
		return st, nil
	}
	return "", fmt.Errorf("unknown job post status %q", s)
}
