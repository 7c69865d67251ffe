package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/models"
)

// CarList renders car_list.html filtered by ?model=.
func (h *Handler) CarList(c *gin.Context) {
	req, ok := h.listRequest(c, "model")
	if !ok {
		return
	}
	list, err := h.services.Car().List(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	pager, ok := h.pager(c, req, list.Count)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "car_list.html", gin.H{
		"car_list":     list.Items,
		"pager":        pager,
		"search_param": "model",
		"search_value": req.Search,
	})
}

func (h *Handler) CarDetail(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	car, err := h.services.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "car_detail.html", gin.H{
		"car":         car,
		"is_assigned": car.HasDriver(CurrentDriver(c).ID),
	})
}

func (h *Handler) CarCreatePage(c *gin.Context) {
	h.renderCarForm(c, forms.Car{}, "/cars/create", nil)
}

func (h *Handler) CarCreate(c *gin.Context) {
	var form forms.Car
	_ = c.ShouldBindWith(&form, binding.Form)

	car, err := h.services.Car().Create(c.Request.Context(), form)
	if err != nil {
		h.carFormError(c, form, "/cars/create", err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/cars/%d/", car.ID))
}

func (h *Handler) CarUpdatePage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	car, err := h.services.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	form := forms.Car{
		Model:        car.Model,
		Manufacturer: strconv.FormatInt(car.ManufacturerID, 10),
	}
	for _, d := range car.Drivers {
		form.Drivers = append(form.Drivers, strconv.FormatInt(d.ID, 10))
	}
	h.renderCarForm(c, form, fmt.Sprintf("/cars/%d/update", id), nil)
}

func (h *Handler) CarUpdate(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	var form forms.Car
	_ = c.ShouldBindWith(&form, binding.Form)

	if _, err := h.services.Car().Update(c.Request.Context(), id, form); err != nil {
		h.carFormError(c, form, fmt.Sprintf("/cars/%d/update", id), err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/cars/%d/", id))
}

func (h *Handler) carFormError(c *gin.Context, form forms.Car, action string, err error) {
	errs, ok := validationErrors(err)
	if !ok {
		h.handleError(c, err)
		return
	}
	h.renderCarForm(c, form, action, errs)
}

// renderCarForm loads the select choices alongside the form.
func (h *Handler) renderCarForm(c *gin.Context, form forms.Car, action string, errs forms.Errors) {
	ctx := c.Request.Context()
	manufacturers, err := h.services.Manufacturer().All(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}
	drivers, err := h.services.Driver().All(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "car_form.html", gin.H{
		"form":          form,
		"action":        action,
		"errors":        errs,
		"manufacturers": manufacturers,
		"drivers":       drivers,
	})
}

func (h *Handler) CarDeletePage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	car, err := h.services.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"title":  carTitle(car),
		"action": fmt.Sprintf("/cars/%d/delete", car.ID),
		"cancel": fmt.Sprintf("/cars/%d/", car.ID),
	})
}

func (h *Handler) CarDelete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	if err := h.services.Car().Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/cars/")
}

// CarToggleAssign adds or removes the signed in driver from the car.
func (h *Handler) CarToggleAssign(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	if _, err := h.services.Car().ToggleAssign(c.Request.Context(), CurrentDriver(c), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/cars/%d/", id))
}

func carTitle(car *models.Car) string {
	if car.Manufacturer != nil {
		return fmt.Sprintf("car %s %s", car.Manufacturer.Name, car.Model)
	}
	return "car " + car.Model
}
