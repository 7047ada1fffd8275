// Package marketplace contains the business logic of the marketplace:
// registrations, bookings and job posts over the shared document store.
// It is transport-agnostic and used by the HTTP API.
package marketplace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobmate/marketplace-service/internal/model"
	"jobmate/marketplace-service/internal/query"
	"jobmate/marketplace-service/internal/store"
	"jobmate/marketplace-service/internal/taxonomy"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates all marketplace operations.
type Service struct {
	store  *store.Store
	events Publisher
	log    *zap.Logger
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPublisher sets where write events are announced.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

// NewService returns a configured Service.
func NewService(st *store.Store, log *zap.Logger, opts ...Option) *Service {
	s := &Service{store: st, events: NopPublisher{}, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ─── Writes ──────────────────────────────────────────────────────────────────

// RegisterProfessional appends a professional to the directory.
// Unknown categories are accepted; the taxonomy is only a hint.
func (s *Service) RegisterProfessional(ctx context.Context, in ProfessionalInput) (*model.Professional, error) {
	if !taxonomy.IsKnown(in.Category) {
		s.log.Debug("professional registered with unlisted category", zap.String("category", in.Category))
	}

	var p model.Professional
	err := s.store.Update(ctx, func(doc *model.Document) error {
		p = model.Professional{
			ID:               store.NextID(doc, model.Professionals),
			Name:             in.Name,
			Email:            in.Email,
			Phone:            in.Phone,
			Category:         in.Category,
			Specialization:   in.Specialization,
			Experience:       in.Experience,
			Education:        in.Education,
			Skills:           in.Skills,
			HourlyRate:       in.HourlyRate,
			Availability:     in.Availability,
			PortfolioLink:    in.PortfolioLink,
			LinkedinProfile:  in.LinkedinProfile,
			Certifications:   in.Certifications,
			Languages:        in.Languages,
			Location:         in.Location,
			RemoteWork:       bool(in.RemoteWork),
			RegistrationDate: s.timestamp(),
		}
		doc.Professionals = append(doc.Professionals, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registerProfessional: %w", err)
	}

	s.publish(ctx, EventProfessionalRegistered, map[string]any{
		"professionalId": p.ID,
		"category":       p.Category,
	})
	return &p, nil
}

// RegisterOrganization appends a hiring organization.
func (s *Service) RegisterOrganization(ctx context.Context, in OrganizationInput) (*model.Organization, error) {
	var o model.Organization
	err := s.store.Update(ctx, func(doc *model.Document) error {
		o = model.Organization{
			ID:          store.NextID(doc, model.Organizations),
			Name:        in.Name,
			Email:       in.Email,
			Phone:       in.Phone,
			Address:     in.Address,
			Type:        in.Type,
			Description: in.Description,
		}
		doc.Organizations = append(doc.Organizations, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registerOrganization: %w", err)
	}

	s.publish(ctx, EventOrganizationRegistered, map[string]any{"organizationId": o.ID})
	return &o, nil
}

// BookProfessional records a pending booking request for professionalID.
// Returns ErrNotFound, without writing, if the professional does not exist.
func (s *Service) BookProfessional(ctx context.Context, professionalID int, in BookingInput) (*model.Booking, error) {
	var b model.Booking
	err := s.store.Update(ctx, func(doc *model.Document) error {
		if _, ok := query.FindProfessional(doc.Professionals, professionalID); !ok {
			return notFound("professional", professionalID)
		}
		b = model.Booking{
			ID:               store.NextID(doc, model.Bookings),
			ProfessionalID:   professionalID,
			OrganizationName: in.OrganizationName,
			ContactEmail:     in.ContactEmail,
			ContactPhone:     in.ContactPhone,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			ProjectType:      in.ProjectType,
			Requirements:     in.Requirements,
			Budget:           in.Budget,
			BookingDate:      s.timestamp(),
			Status:           model.BookingPending,
		}
		doc.Bookings = append(doc.Bookings, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bookProfessional: %w", err)
	}

	s.publish(ctx, EventBookingRequested, map[string]any{
		"bookingId":      b.ID,
		"professionalId": b.ProfessionalID,
		"organization":   b.OrganizationName,
	})
	return &b, nil
}

// PostJob appends an active job post.
func (s *Service) PostJob(ctx context.Context, in JobPostInput) (*model.JobPost, error) {
	var j model.JobPost
	err := s.store.Update(ctx, func(doc *model.Document) error {
		j = model.JobPost{
			ID:             store.NextID(doc, model.JobPosts),
			Title:          in.Title,
			Company:        in.Company,
			Category:       in.Category,
			Description:    in.Description,
			Requirements:   in.Requirements,
			SalaryRange:    in.SalaryRange,
			Location:       in.Location,
			RemoteAllowed:  bool(in.RemoteAllowed),
			EmploymentType: in.EmploymentType,
			ContactEmail:   in.ContactEmail,
			Deadline:       in.Deadline,
			PostedDate:     s.timestamp(),
			Status:         model.JobPostActive,
		}
		doc.JobPosts = append(doc.JobPosts, j)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("postJob: %w", err)
	}

	s.publish(ctx, EventJobPosted, map[string]any{
		"jobPostId": j.ID,
		"category":  j.Category,
	})
	return &j, nil
}

// ─── Reads ───────────────────────────────────────────────────────────────────

// ListProfessionals returns the directory filtered by category ("all" or
// empty for every category) and a case-insensitive search term.
func (s *Service) ListProfessionals(ctx context.Context, category, search string) ([]model.Professional, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listProfessionals: %w", err)
	}
	if category == "" {
		category = query.AllCategories
	}
	return query.FilterProfessionals(doc.Professionals, category, search), nil
}

// GetProfessional returns one professional or ErrNotFound.
func (s *Service) GetProfessional(ctx context.Context, id int) (*model.Professional, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("getProfessional: %w", err)
	}
	p, ok := query.FindProfessional(doc.Professionals, id)
	if !ok {
		return nil, notFound("professional", id)
	}
	return &p, nil
}

// GetOrganization returns one organization or ErrNotFound.
func (s *Service) GetOrganization(ctx context.Context, id int) (*model.Organization, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("getOrganization: %w", err)
	}
	o, ok := query.FindOrganization(doc.Organizations, id)
	if !ok {
		return nil, notFound("organization", id)
	}
	return &o, nil
}

// GetBooking returns one booking with its professional attached, or
// ErrNotFound. A dangling professional reference is not an error.
func (s *Service) GetBooking(ctx context.Context, id int) (*model.EnrichedBooking, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("getBooking: %w", err)
	}
	b, ok := query.FindBooking(doc.Bookings, id)
	if !ok {
		return nil, notFound("booking", id)
	}
	eb := query.EnrichBookings([]model.Booking{b}, doc.Professionals)[0]
	return &eb, nil
}

// GetJobPost returns one job post or ErrNotFound.
func (s *Service) GetJobPost(ctx context.Context, id int) (*model.JobPost, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("getJobPost: %w", err)
	}
	j, ok := query.FindJobPost(doc.JobPosts, id)
	if !ok {
		return nil, notFound("job post", id)
	}
	return &j, nil
}

// ListOrganizations returns every organization in registration order.
func (s *Service) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listOrganizations: %w", err)
	}
	return doc.Organizations, nil
}

// ListBookings returns bookings with their professional attached. A
// non-empty status keeps only bookings in that status; unknown statuses are
// a ValidationError.
func (s *Service) ListBookings(ctx context.Context, status string) ([]model.EnrichedBooking, error) {
	var want model.BookingStatus
	if status != "" {
		st, err := model.ParseBookingStatus(status)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		want = st
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listBookings: %w", err)
	}
	return query.EnrichBookings(query.BookingsWithStatus(doc.Bookings, want), doc.Professionals), nil
}

// ListJobPosts returns job posts filtered like ListProfessionals and, when
// status is non-empty, by status.
func (s *Service) ListJobPosts(ctx context.Context, category, search, status string) ([]model.JobPost, error) {
	var want model.JobPostStatus
	if status != "" {
		st, err := model.ParseJobPostStatus(status)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		want = st
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listJobPosts: %w", err)
	}
	if category == "" {
		category = query.AllCategories
	}
	return query.JobPostsWithStatus(query.FilterJobPosts(doc.JobPosts, category, search), want), nil
}

// JobCategories returns the fixed category reference.
func (s *Service) JobCategories() map[string][]string {
	return taxonomy.JobCategories()
}

// Categories returns the category keys in alphabetical order.
func (s *Service) Categories() []string {
	return taxonomy.Categories()
}

// CategoryTitles returns the example titles of one category, or ErrNotFound.
func (s *Service) CategoryTitles(category string) ([]string, error) {
	titles := taxonomy.Titles(category)
	if titles == nil {
		return nil, &NotFoundError{Resource: fmt.Sprintf("category %q", category)}
	}
	return titles, nil
}

// Ping verifies the stored document can be read and decoded.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.store.Load(ctx)
	return err
}

// publish is non-fatal: the record is already stored.
func (s *Service) publish(ctx context.Context, channel string, payload map[string]any) {
	if err := s.events.Publish(ctx, channel, payload); err != nil {
		s.log.Warn("publish failed", zap.String("channel", channel), zap.Error(err))
	}
}

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError names the record or category that does not exist.
type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(resource string, id int) error {
	return &NotFoundError{Resource: fmt.Sprintf("%s %d", resource, id)}
}

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
