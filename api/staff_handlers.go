package api

import (
	"github.com/officedesk/officedesk/directory"
	"github.com/officedesk/officedesk/httpx"
)

func (a *API) createManager(c httpx.Context) error {
	var req managerRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	manager, err := a.staff.CreateManager(c.Request().Context(), directory.Manager{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		OfficeID:  req.OfficeID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusCreated, toManagerResponse(manager))
}

func (a *API) getManager(c httpx.Context) error {
	manager, err := a.staff.GetManager(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toManagerResponse(manager))
}

func (a *API) listManagers(c httpx.Context) error {
	managers, err := a.staff.ListManagers(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	out := make([]managerResponse, 0, len(managers))
	for _, m := range managers {
		out = append(out, toManagerResponse(m))
	}
	return c.JSON(httpx.StatusOK, out)
}

func (a *API) patchManager(c httpx.Context) error {
	var req managerPatchRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	manager, err := a.staff.UpdateManagerPartial(c.Request().Context(), c.Param("id"), directory.ManagerPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		OfficeID:  req.OfficeID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toManagerResponse(manager))
}

func (a *API) deleteManager(c httpx.Context) error {
	if err := a.staff.DeleteManager(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.NoContent(httpx.StatusNoContent)
}

func (a *API) createClerk(c httpx.Context) error {
	var req clerkRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	clerk, err := a.staff.CreateClerk(c.Request().Context(), directory.Clerk{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		OfficeID:  req.OfficeID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusCreated, toClerkResponse(clerk))
}

func (a *API) getClerk(c httpx.Context) error {
	clerk, err := a.staff.GetClerk(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toClerkResponse(clerk))
}

func (a *API) listClerks(c httpx.Context) error {
	clerks, err := a.staff.ListClerks(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	out := make([]clerkResponse, 0, len(clerks))
	for _, cl := range clerks {
		out = append(out, toClerkResponse(cl))
	}
	return c.JSON(httpx.StatusOK, out)
}

func (a *API) patchClerk(c httpx.Context) error {
	var req clerkPatchRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	clerk, err := a.staff.UpdateClerkPartial(c.Request().Context(), c.Param("id"), directory.ClerkPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		OfficeID:  req.OfficeID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toClerkResponse(clerk))
}

func (a *API) deleteClerk(c httpx.Context) error {
	if err := a.staff.DeleteClerk(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.NoContent(httpx.StatusNoContent)
}
