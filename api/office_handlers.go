package api

import (
	"github.com/officedesk/officedesk/directory"
	"github.com/officedesk/officedesk/httpx"
)

func (a *API) createOffice(c httpx.Context) error {
	var req officeRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	office, err := a.offices.Create(c.Request().Context(), directory.Office{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusCreated, toOfficeResponse(office))
}

func (a *API) getOffice(c httpx.Context) error {
	office, err := a.offices.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toOfficeResponse(office))
}

func (a *API) listOffices(c httpx.Context) error {
	offices, err := a.offices.List(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	out := make([]officeResponse, 0, len(offices))
	for _, o := range offices {
		out = append(out, toOfficeResponse(o))
	}
	return c.JSON(httpx.StatusOK, out)
}

func (a *API) patchOffice(c httpx.Context) error {
	var req officePatchRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	office, err := a.offices.UpdatePartial(c.Request().Context(), c.Param("id"), directory.OfficePatch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toOfficeResponse(office))
}

func (a *API) deleteOffice(c httpx.Context) error {
	if err := a.offices.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.NoContent(httpx.StatusNoContent)
}
