// Package handler holds the gin handlers of the fleet pages. Every handler
// reads the signed in driver from the gin context set by AuthRequired.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/search"
	"taxiservice/service"
)

type Options struct {
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
	PageSize     int
}

type Handler struct {
	services service.IServiceManager
	opts     Options
	log      logger.ILogger
}

func New(services service.IServiceManager, opts Options, log logger.ILogger) *Handler {
	if opts.CookieName == "" {
		opts.CookieName = "sessionid"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}
	return &Handler{
		services: services,
		opts:     opts,
		log:      log,
	}
}

// render adds the signed in driver to data and writes the named template.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if d := CurrentDriver(c); d != nil {
		data["user"] = d
	}
	c.HTML(status, name, data)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"status":  http.StatusNotFound,
		"message": "Page not found.",
	})
}

func (h *Handler) forbidden(c *gin.Context) {
	h.render(c, http.StatusForbidden, "error.html", gin.H{
		"status":  http.StatusForbidden,
		"message": "You do not have permission to perform this action.",
	})
}

// handleError renders the page matching a service error. Validation errors
// are handled by the callers since they re-render their own form.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.NotFound(c)
	case errors.Is(err, service.ErrForbidden):
		h.forbidden(c)
	case errors.Is(err, service.ErrUnauthenticated):
		redirectToLogin(c)
	default:
		h.log.Error("request failed",
			logger.Error(err),
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
		)
		h.render(c, http.StatusInternalServerError, "error.html", gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Something went wrong. Please try again later.",
		})
	}
}

// paramID reads the :id path parameter. A malformed id is rendered as 404
// and ok is false.
func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(c)
		return 0, false
	}
	return id, true
}

// listRequest builds the request for a searchable list page. An invalid page
// number renders 404 and ok is false.
func (h *Handler) listRequest(c *gin.Context, searchParam string) (models.ListRequest, bool) {
	page, err := search.ParsePage(c.Query("page"))
	if err != nil {
		h.NotFound(c)
		return models.ListRequest{}, false
	}
	return models.ListRequest{
		Search: search.Normalize(c.Query(searchParam)),
		Page:   page,
		Limit:  h.opts.PageSize,
	}, true
}

// pager renders 404 when the requested page is past the last one.
func (h *Handler) pager(c *gin.Context, req models.ListRequest, count int) (search.Pager, bool) {
	p := search.NewPager(req.Page, req.Limit, count, req.Search)
	if !p.Valid() {
		h.NotFound(c)
		return p, false
	}
	return p, true
}

// validationErrors extracts field errors. ok is false for any other error.
func validationErrors(err error) (forms.Errors, bool) {
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
