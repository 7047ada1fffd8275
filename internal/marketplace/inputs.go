package marketplace

import "jobmate/marketplace-service/internal/model"

// ─── Submission types ────────────────────────────────────────────────────────
//
// Inputs accept JSON bodies and HTML form posts. Required fields are enforced
// by the transport through the binding tags; the service assumes they are set.

// ProfessionalInput is a professional registration.
type ProfessionalInput struct {
	Name            string         `json:"name" form:"name" binding:"required"`
	Email           string         `json:"email" form:"email" binding:"required,email"`
	Phone           string         `json:"phone" form:"phone" binding:"required"`
	Category        string         `json:"category" form:"category" binding:"required"`
	Specialization  string         `json:"specialization" form:"specialization" binding:"required"`
	Experience      string         `json:"experience" form:"experience" binding:"required"`
	Education       string         `json:"education" form:"education" binding:"required"`
	Skills          string         `json:"skills" form:"skills" binding:"required"`
	HourlyRate      string         `json:"hourly_rate" form:"hourly_rate" binding:"required"`
	Availability    string         `json:"availability" form:"availability" binding:"required"`
	PortfolioLink   string         `json:"portfolio_link" form:"portfolio_link"`
	LinkedinProfile string         `json:"linkedin_profile" form:"linkedin_profile"`
	Certifications  string         `json:"certifications" form:"certifications"`
	Languages       string         `json:"languages" form:"languages"`
	Location        string         `json:"location" form:"location" binding:"required"`
	RemoteWork      model.Checkbox `json:"remote_work" form:"remote_work"`
}

// OrganizationInput is an organization registration.
type OrganizationInput struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Email       string `json:"email" form:"email" binding:"required,email"`
	Phone       string `json:"phone" form:"phone" binding:"required"`
	Address     string `json:"address" form:"address" binding:"required"`
	Type        string `json:"type" form:"type" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
}

// BookingInput is a booking request against one professional.
type BookingInput struct {
	OrganizationName string `json:"organization_name" form:"organization_name" binding:"required"`
	ContactEmail     string `json:"contact_email" form:"contact_email" binding:"required,email"`
	ContactPhone     string `json:"contact_phone" form:"contact_phone" binding:"required"`
	StartDate        string `json:"start_date" form:"start_date" binding:"required"`
	EndDate          string `json:"end_date" form:"end_date" binding:"required"`
	ProjectType      string `json:"project_type" form:"project_type" binding:"required"`
	Requirements     string `json:"requirements" form:"requirements" binding:"required"`
	Budget           string `json:"budget" form:"budget" binding:"required"`
}

// JobPostInput is a new job board entry.
type JobPostInput struct {
	Title          string         `json:"title" form:"title" binding:"required"`
	Company        string         `json:"company" form:"company" binding:"required"`
	Category       string         `json:"category" form:"category" binding:"required"`
	Description    string         `json:"description" form:"description" binding:"required"`
	Requirements   string         `json:"requirements" form:"requirements" binding:"required"`
	SalaryRange    string         `json:"salary_range" form:"salary_range" binding:"required"`
	Location       string         `json:"location" form:"location" binding:"required"`
	RemoteAllowed  model.Checkbox `json:"remote_allowed" form:"remote_allowed"`
	EmploymentType string         `json:"employment_type" form:"employment_type" binding:"required"`
	ContactEmail   string         `json:"contact_email" form:"contact_email" binding:"required,email"`
	Deadline       string         `json:"deadline" form:"deadline" binding:"required"`
}
