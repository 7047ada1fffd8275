package query

import "jobmate/marketplace-service/internal/model"

// FindProfessional returns the first professional with the given id.
func FindProfessional(all []model.Professional, id int) (model.Professional, bool) {
	for _, p := range all {
		if p.ID == id {
			return p, true
		}
	}
	return model.Professional{}, false
}

// FindOrganization returns the first organization with the given id.
func FindOrganization(all []model.Organization, id int) (model.Organization, bool) {
	for _, o := range all {
		if o.ID == id {
			return o, true
		}
	}
	return model.Organization{}, false
}

// FindBooking returns the first booking with the given id.
func FindBooking(all []model.Booking, id int) (model.Booking, bool) {
	for _, b := range all {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// FindJobPost returns the first job post with the given id.
func FindJobPost(all []model.JobPost, id int) (model.JobPost, bool) {
	for _, j := range all {
		if j.ID == id {
			return j, true
		}
	}
	return model.JobPost{}, false
}

// EnrichBookings pairs every booking with the professional it references.
// Bookings whose professional is missing are kept with a nil Professional.
// Each result holds its own copy of the professional.
func EnrichBookings(bookings []model.Booking, professionals []model.Professional) []model.EnrichedBooking {
	out := make([]model.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		eb := model.EnrichedBooking{Booking: b}
		if p, ok := FindProfessional(professionals, b.ProfessionalID); ok {
			eb.Professional = &p
		}
		out = append(out, eb)
	}
	return out
}
