package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/models"
	"taxiservice/service"
)

const (
	LoginPath = "/accounts/login/"

	driverKey  = "taxiservice/driver"
	sessionKey = "taxiservice/session"
)

// AuthRequired resolves the session cookie. Requests without a valid session
// are redirected to the login page with the original URL in next.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.opts.CookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		d, sess, err := h.services.Auth().Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				h.clearSessionCookie(c)
				redirectToLogin(c)
				return
			}
			h.handleError(c, err)
			c.Abort()
			return
		}

		c.Set(driverKey, d)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentDriver returns the signed in driver, or nil outside AuthRequired.
func CurrentDriver(c *gin.Context) *models.Driver {
	v, ok := c.Get(driverKey)
	if !ok {
		return nil
	}
	d, _ := v.(*models.Driver)
	return d
}

func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*models.Session)
	return s
}

func redirectToLogin(c *gin.Context) {
	target := LoginPath
	if c.Request.Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	}
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// safeNext only follows local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (h *Handler) setSessionCookie(c *gin.Context, sess *models.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, sess.Token, int(h.opts.SessionTTL.Seconds()), "/", "", h.opts.CookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.CookieSecure, true)
}
