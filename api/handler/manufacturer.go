package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taxiservice/pkg/forms"
	"taxiservice/service"
)

// ManufacturerList renders manufacturer_list.html filtered by ?name=.
func (h *Handler) ManufacturerList(c *gin.Context) {
	req, ok := h.listRequest(c, "name")
	if !ok {
		return
	}
	list, err := h.services.Manufacturer().List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	pager, ok := h.pager(c, req, list.Count)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "manufacturer_list.html", gin.H{
		"manufacturer_list": list.Items,
		"pager":             pager,
		"search_param":      "name",
		"search_value":      req.Search,
	})
}

func (h *Handler) ManufacturerCreatePage(c *gin.Context) {
	h.render(c, http.StatusOK, "manufacturer_form.html", gin.H{
		"form":   forms.Manufacturer{},
		"action": "/manufacturers/create",
	})
}

func (h *Handler) ManufacturerCreate(c *gin.Context) {
	var form forms.Manufacturer
	_ = c.ShouldBindWith(&form, binding.Form)

	if _, err := h.services.Manufacturer().Create(c.Request.Context(), form); err != nil {
		h.manufacturerFormError(c, form, "/manufacturers/create", err)
		return
	}
	c.Redirect(http.StatusFound, "/manufacturers/")
}

func (h *Handler) ManufacturerUpdatePage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	m, err := h.services.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "manufacturer_form.html", gin.H{
		"form":   forms.Manufacturer{Name: m.Name, Country: m.Country},
		"action": fmt.Sprintf("/manufacturers/%d/update", m.ID),
	})
}

func (h *Handler) ManufacturerUpdate(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	var form forms.Manufacturer
	_ = c.ShouldBindWith(&form, binding.Form)

	if _, err := h.services.Manufacturer().Update(c.Request.Context(), id, form); err != nil {
		h.manufacturerFormError(c, form, fmt.Sprintf("/manufacturers/%d/update", id), err)
		return
	}
	c.Redirect(http.StatusFound, "/manufacturers/")
}

func (h *Handler) manufacturerFormError(c *gin.Context, form forms.Manufacturer, action string, err error) {
	errs, ok := validationErrors(err)
	if !ok {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "manufacturer_form.html", gin.H{
		"form":   form,
		"action": action,
		"errors": errs,
	})
}

func (h *Handler) ManufacturerDeletePage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	m, err := h.services.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"title":  fmt.Sprintf("manufacturer %s", m.Name),
		"action": fmt.Sprintf("/manufacturers/%d/delete", m.ID),
		"cancel": "/manufacturers/",
	})
}

func (h *Handler) ManufacturerDelete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	err := h.services.Manufacturer().Delete(ctx, id)
	if errors.Is(err, service.ErrInUse) {
		m, getErr := h.services.Manufacturer().Get(ctx, id)
		if getErr != nil {
			h.handleError(c, getErr)
			return
		}
		h.render(c, http.StatusOK, "confirm_delete.html", gin.H{
			"title":  fmt.Sprintf("manufacturer %s", m.Name),
			"action": fmt.Sprintf("/manufacturers/%d/delete", m.ID),
			"cancel": "/manufacturers/",
			"error":  "This manufacturer cannot be deleted while cars reference it.",
		})
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/manufacturers/")
}
