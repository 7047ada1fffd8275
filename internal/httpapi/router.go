// Package httpapi exposes the marketplace over HTTP with gin.
//
// Routes:
//
//	GET  /health                          → liveness + store readability
//	GET  /api/job-categories              → fixed category reference
//	GET  /api/job-categories/:category    → titles of one category
//	GET  /api/professionals               → directory (?category=&search=)
//	POST /api/professionals               → register a professional
//	GET  /api/professionals/:id           → one professional
//	POST /api/professionals/:id/bookings  → request a booking
//	GET  /api/organizations               → organizations
//	POST /api/organizations               → register an organization
//	GET  /api/organizations/:id           → one organization
//	GET  /api/bookings                    → bookings with their professional (?status=)
//	GET  /api/bookings/:id                → one booking with its professional
//	GET  /api/job-posts                   → job board (?category=&search=&status=)
//	POST /api/job-posts                   → post a job
//	GET  /api/job-posts/:id               → one job post
//
// POST bodies may be JSON or HTML form encoded.
package httpapi

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jobmate/marketplace-service/internal/marketplace"
)

// Options tunes the router.
type Options struct {
	Version           string
	MaxRequestsPerMin int
}

var registerTagNames sync.Once

// NewRouter returns a gin engine with middleware and all routes mounted.
func NewRouter(svc *marketplace.Service, log *zap.Logger, opts Options) *gin.Engine {
	registerTagNames.Do(func() {
		// Report validation failures with the JSON field names clients send.
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(f reflect.StructField) string {
				name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(log))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	if opts.MaxRequestsPerMin > 0 {
		r.Use(rateLimit(opts.MaxRequestsPerMin, log))
	}

	h := NewHandler(svc, log, opts.Version)
	h.RegisterRoutes(r)
	return r
}
