package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taxiservice/pkg/forms"
)

func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{
		"form": forms.Login{Next: c.Query("next")},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var form forms.Login
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"form": form})
		return
	}

	sess, _, err := h.services.Auth().Login(c.Request.Context(), form)
	if err != nil {
		errs, ok := validationErrors(err)
		if !ok {
			h.handleError(c, err)
			return
		}
		form.Password = ""
		h.render(c, http.StatusOK, "login.html", gin.H{
			"form":   form,
			"errors": errs,
		})
		return
	}

	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.opts.CookieName); err == nil {
		if err := h.services.Auth().Logout(c.Request.Context(), token); err != nil {
			h.handleError(c, err)
			return
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, LoginPath)
}

// Index shows fleet totals and how many pages this session has opened.
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.services.Stats(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	var visits int
	if sess := currentSession(c); sess != nil {
		if visits, err = h.services.Auth().Visit(ctx, sess.Token); err != nil {
			h.handleError(c, err)
			return
		}
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"num_drivers":       stats.Drivers,
		"num_cars":          stats.Cars,
		"num_manufacturers": stats.Manufacturers,
		"num_visits":        visits,
	})
}
