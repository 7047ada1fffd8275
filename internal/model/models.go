// Package model defines the records stored in the marketplace document.
//
// Field names follow the persisted JSON layout so that documents written by
// earlier versions of the marketplace load without migration.
package model

// Collection names one of the four record collections in a Document.
type Collection string

const (
	Professionals Collection = "professionals"
	Organizations Collection = "organizations"
	Bookings      Collection = "bookings"
	JobPosts      Collection = "job_posts"
)

// AllCollections lists the collections in their persisted order.
var AllCollections = []Collection{Professionals, Organizations, Bookings, JobPosts}

// Professional is an independent professional listed in the directory.
type Professional struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Category         string `json:"category"`
	Specialization   string `json:"specialization"`
	Experience       string `json:"experience"`
	Education        string `json:"education"`
	Skills           string `json:"skills"`
	HourlyRate       string `json:"hourly_rate"`
	Availability     string `json:"availability"`
	PortfolioLink    string `json:"portfolio_link"`
	LinkedinProfile  string `json:"linkedin_profile"`
	Certifications   string `json:"certifications"`
	Languages        string `json:"languages"`
	Location         string `json:"location"`
	RemoteWork       bool   `json:"remote_work"`
	RegistrationDate string `json:"registration_date"`
}

// Organization is a hiring organization. Immutable once registered.
type Organization struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Booking is a request from an organization to engage a professional.
// ProfessionalID is an informal reference; it is not enforced on load.
type Booking struct {
	ID               int           `json:"id"`
	ProfessionalID   int           `json:"professional_id"`
	OrganizationName string        `json:"organization_name"`
	ContactEmail     string        `json:"contact_email"`
	ContactPhone     string        `json:"contact_phone"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	ProjectType      string        `json:"project_type"`
	Requirements     string        `json:"requirements"`
	Budget           string        `json:"budget"`
	BookingDate      string        `json:"booking_date"`
	Status           BookingStatus `json:"status"`
}

// JobPost is an open position published on the job board.
type JobPost struct {
	ID             int           `json:"id"`
	Title          string        `json:"title"`
	Company        string        `json:"company"`
	Category       string        `json:"category"`
	Description    string        `json:"description"`
	Requirements   string        `json:"requirements"`
	SalaryRange    string        `json:"salary_range"`
	Location       string        `json:"location"`
	RemoteAllowed  bool          `json:"remote_allowed"`
	EmploymentType string        `json:"employment_type"`
	ContactEmail   string        `json:"contact_email"`
	Deadline       string        `json:"deadline"`
	PostedDate     string        `json:"posted_date"`
	Status         JobPostStatus `json:"status"`
}

// EnrichedBooking is a Booking with the referenced professional attached for
// display. Professional is nil (JSON null) when the reference dangles.
type EnrichedBooking struct {
	Booking
	Professional *Professional `json:"professional"`
}

// Document is the single persisted structure holding every collection.
// Sequences carries the last identifier handed out per collection.
type Document struct {
	Professionals []Professional     `json:"professionals"`
	Organizations []Organization     `json:"organizations"`
	Bookings      []Booking          `json:"bookings"`
	JobPosts      []JobPost          `json:"job_posts"`
	Sequences     map[Collection]int `json:"sequences,omitempty"`
}

// NewDocument returns a document with four empty collections.
func NewDocument() *Document {
	return &Document{
		Professionals: []Professional{},
		Organizations: []Organization{},
		Bookings:      []Booking{},
		JobPosts:      []JobPost{},
	}
}

// Normalize replaces nil collections with empty ones so the document always
// serializes four arrays, and drops an empty Sequences map, which is not
// serialized.
func (d *Document) Normalize() {
	if len(d.Sequences) == 0 {
		d.Sequences = nil
	}
	if d.Professionals == nil {
		d.Professionals = []Professional{}
	}
	if d.Organizations == nil {
		d.Organizations = []Organization{}
	}
	if d.Bookings == nil {
		d.Bookings = []Booking{}
	}
	if d.JobPosts == nil {
		d.JobPosts = []JobPost{}
	}
}

// Len returns the number of records in collection c.
func (d *Document) Len(c Collection) int {
	switch c {
	case Professionals:
		return len(d.Professionals)
	case Organizations:
		return len(d.Organizations)
	case Bookings:
		return len(d.Bookings)
	case JobPosts:
		return len(d.JobPosts)
	}
	return 0
}

// MaxID returns the largest id stored in collection c, or 0 when empty.
func (d *Document) MaxID(c Collection) int {
	max := 0
	keep := func(id int) {
		if id > max {
			max = id
		}
	}
	switch c {
	case Professionals:
		for _, p := range d.Professionals {
			keep(p.ID)
		}
	case Organizations:
		for _, o := range d.Organizations {
			keep(o.ID)
		}
	case Bookings:
		for _, b := range d.Bookings {
			keep(b.ID)
		}
	case JobPosts:
		for _, j := range d.JobPosts {
			keep(j.ID)
		}
	}
	return max
}
