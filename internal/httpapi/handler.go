package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jobmate/marketplace-service/internal/marketplace"
)

// Handler holds shared dependencies.
type Handler struct {
	svc     *marketplace.Service
	log     *zap.Logger
	version string
}

// NewHandler returns a configured Handler.
func NewHandler(svc *marketplace.Service, log *zap.Logger, version string) *Handler {
	return &Handler{svc: svc, log: log, version: version}
}

// RegisterRoutes mounts all marketplace routes on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.GET("/job-categories", h.jobCategories)
		api.GET("/job-categories/:category", h.categoryTitles)

		api.GET("/professionals", h.listProfessionals)
		api.POST("/professionals", h.registerProfessional)
		api.GET("/professionals/:id", h.getProfessional)
		api.POST("/professionals/:id/bookings", h.bookProfessional)

		api.GET("/organizations", h.listOrganizations)
		api.POST("/organizations", h.registerOrganization)
		api.GET("/organizations/:id", h.getOrganization)

		api.GET("/bookings", h.listBookings)
		api.GET("/bookings/:id", h.getBooking)

		api.GET("/job-posts", h.listJobPosts)
		api.POST("/job-posts", h.postJob)
		api.GET("/job-posts/:id", h.getJobPost)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) health(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		h.log.Error("health: store unreadable", zap.Error(err))
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "marketplace-service",
		"version": h.version,
	})
}

func (h *Handler) jobCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.JobCategories())
}

func (h *Handler) categoryTitles(c *gin.Context) {
	titles, err := h.svc.CategoryTitles(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      err.Error(),
			"categories": h.svc.Categories(),
		})
		return
	}
	c.JSON(http.StatusOK, titles)
}

func (h *Handler) listProfessionals(c *gin.Context) {
	list, err := h.svc.ListProfessionals(c.Request.Context(), c.DefaultQuery("category", "all"), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getProfessional(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetProfessional(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) registerProfessional(c *gin.Context) {
	var in marketplace.ProfessionalInput
	if !h.bind(c, &in) {
		return
	}
	p, err := h.svc.RegisterProfessional(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) bookProfessional(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var in marketplace.BookingInput
	if !h.bind(c, &in) {
		return
	}
	b, err := h.svc.BookProfessional(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) listOrganizations(c *gin.Context) {
	list, err := h.svc.ListOrganizations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) registerOrganization(c *gin.Context) {
	var in marketplace.OrganizationInput
	if !h.bind(c, &in) {
		return
	}
	o, err := h.svc.RegisterOrganization(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) getOrganization(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	o, err := h.svc.GetOrganization(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) listBookings(c *gin.Context) {
	list, err := h.svc.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getBooking(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	b, err := h.svc.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) listJobPosts(c *gin.Context) {
	list, err := h.svc.ListJobPosts(c.Request.Context(), c.DefaultQuery("category", "all"), c.Query("search"), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) postJob(c *gin.Context) {
	var in marketplace.JobPostInput
	if !h.bind(c, &in) {
		return
	}
	j, err := h.svc.PostJob(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *Handler) getJobPost(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	j, err := h.svc.GetJobPost(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (h *Handler) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid id %q", c.Param("id"))})
		return 0, false
	}
	return id, true
}

// bind decodes a JSON or form body into dst and reports whether the handler
// should continue.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		h.fail(c, validationError(err))
		return false
	}
	return true
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &marketplace.ValidationError{Msg: "invalid request body: " + err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return &marketplace.ValidationError{Msg: strings.Join(msgs, "; ")}
}

// fail maps domain errors to HTTP responses. Storage failures are logged
// with their cause and reported without internals.
func (h *Handler) fail(c *gin.Context, err error) {
	var (
		ve *marketplace.ValidationError
		nf *marketplace.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	default:
		h.log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("requestId", c.GetString("requestID")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
