package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taxiservice/pkg/forms"
	"taxiservice/service"
)

// DriverList renders driver_list.html filtered by ?username=.
func (h *Handler) DriverList(c *gin.Context) {
	req, ok := h.listRequest(c, "username")
	if !ok {
		return
	}
	list, err := h.services.Driver().List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	pager, ok := h.pager(c, req, list.Count)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "driver_list.html", gin.H{
		"driver_list":  list.Items,
		"pager":        pager,
		"search_param": "username",
		"search_value": req.Search,
	})
}

func (h *Handler) DriverDetail(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	d, err := h.services.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "driver_detail.html", gin.H{
		"driver":     d,
		"can_manage": service.CanManageDriver(CurrentDriver(c), d.ID) == nil,
	})
}

func (h *Handler) DriverCreatePage(c *gin.Context) {
	h.render(c, http.StatusOK, "driver_form.html", gin.H{
		"form": forms.DriverCreation{},
	})
}

func (h *Handler) DriverCreate(c *gin.Context) {
	var form forms.DriverCreation
	_ = c.ShouldBindWith(&form, binding.Form)

	d, err := h.services.Driver().Create(c.Request.Context(), form)
	if err != nil {
		errs, ok := validationErrors(err)
		if !ok {
			h.handleError(c, err)
			return
		}
		form.Password1, form.Password2 = "", ""
		h.render(c, http.StatusOK, "driver_form.html", gin.H{
			"form":   form,
			"errors": errs,
		})
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/drivers/%d/", d.ID))
}

func (h *Handler) DriverLicenseUpdatePage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	if err := service.CanManageDriver(CurrentDriver(c), id); err != nil {
		h.handleError(c, err)
		return
	}
	d, err := h.services.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "driver_license_form.html", gin.H{
		"driver": d,
		"form":   forms.DriverLicenseUpdate{LicenseNumber: d.LicenseNumber},
	})
}

func (h *Handler) DriverLicenseUpdate(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	var form forms.DriverLicenseUpdate
	_ = c.ShouldBindWith(&form, binding.Form)

	ctx := c.Request.Context()
	if _, err := h.services.Driver().UpdateLicense(ctx, CurrentDriver(c), id, form); err != nil {
		errs, ok := validationErrors(err)
		if !ok {
			h.handleError(c, err)
			return
		}
		d, getErr := h.services.Driver().Get(ctx, id)
		if getErr != nil {
			h.handleError(c, getErr)
			return
		}
		h.render(c, http.StatusOK, "driver_license_form.html", gin.H{
			"driver": d,
			"form":   form,
			"errors": errs,
		})
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/drivers/%d/", id))
}

func (h *Handler) DriverDeletePage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	if err := service.CanManageDriver(CurrentDriver(c), id); err != nil {
		h.handleError(c, err)
		return
	}
	d, err := h.services.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"title":  "driver " + d.Account.Username,
		"action": fmt.Sprintf("/drivers/%d/delete", d.ID),
		"cancel": fmt.Sprintf("/drivers/%d/", d.ID),
	})
}

func (h *Handler) DriverDelete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	actor := CurrentDriver(c)
	if err := h.services.Driver().Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}
	// Deleting yourself also drops your sessions.
	if actor.ID == id {
		h.clearSessionCookie(c)
		c.Redirect(http.StatusFound, LoginPath)
		return
	}
	c.Redirect(http.StatusFound, "/drivers/")
}
