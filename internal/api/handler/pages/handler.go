// Package pages serves the HTML pages: the product listing and the store
// creation form.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"storefront/internal/catalog"
	"storefront/internal/session"
	"storefront/internal/storeform"
	"storefront/pkg/controller"
	"storefront/pkg/logger"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// page names double as template file names.
const (
	pageProducts = "products.html"
	pageStore    = "store.html"
)

// Deps are the collaborators the pages render.
type Deps struct {
	Workflow *storeform.Workflow
	Listing  *catalog.Listing
	// Limiter throttles store form submissions. Nil disables throttling.
	Limiter *controller.RateLimiter
}

// Options configure the pages.
type Options struct {
	// CookieName is the cookie carrying the visitor's session id.
	CookieName string
	// SessionTTL is how long an idle visitor keeps their form.
	SessionTTL time.Duration
	// DomainSuffix is shown next to the subdomain input.
	DomainSuffix string
}

// Handler serves the pages. Each visitor gets their own storeform.Form.
type Handler struct {
	deps      Deps
	options   Options
	forms     *session.Registry[*storeform.Form]
	templates map[string]*template.Template
}

// New parses the embedded templates and returns a Handler.
func New(deps Deps, opts Options) (*Handler, error) {
	templates := make(map[string]*template.Template, 2)
	for _, page := range []string{pageProducts, pageStore} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Handler{
		deps:      deps,
		options:   opts,
		forms:     session.New(opts.SessionTTL, deps.Workflow.NewForm),
		templates: templates,
	}, nil
}

// RegisterRoutes mounts the pages on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/stores/new", h.showStoreForm)

	submit := r
	if h.deps.Limiter != nil {
		submit = r.With(h.deps.Limiter.Limit)
	}
	submit.Post("/stores/new", h.submitStoreForm)
}

// Sessions returns the number of visitor sessions held in memory.
func (h *Handler) Sessions() int {
	return h.forms.Len()
}

// lookupForm returns the visitor's form when they already have a live session.
func (h *Handler) lookupForm(r *http.Request) (*storeform.Form, bool) {
	c, err := r.Cookie(h.options.CookieName)
	if err != nil {
		return nil, false
	}

	return h.forms.Get(c.Value)
}

// acquireForm returns the visitor's form, starting a session when needed.
// Only submissions call it, so sessions are created behind the rate limiter.
func (h *Handler) acquireForm(w http.ResponseWriter, r *http.Request) *storeform.Form {
	var current string
	if c, err := r.Cookie(h.options.CookieName); err == nil {
		current = c.Value
	}

	id, form := h.forms.Acquire(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     h.options.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(h.options.SessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return form
}

// fail writes a plain error response quoting the request id, if any.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int) {
	msg := http.StatusText(status)
	if id := controller.RequestID(r.Context()); id != "" {
		msg += " (request id " + id + ")"
	}
	http.Error(w, msg, status)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error(r.Context(), "could not render page", zap.String("page", page), zap.Error(err))
		h.fail(w, r, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
