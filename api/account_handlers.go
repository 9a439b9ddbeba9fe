package api

import (
	"github.com/officedesk/officedesk/directory"
	"github.com/officedesk/officedesk/httpx"
)

func (a *API) createAccount(c httpx.Context) error {
	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	account, err := a.accounts.Create(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusCreated, toAccountResponse(account))
}

func (a *API) getAccount(c httpx.Context) error {
	account, err := a.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toAccountResponse(account))
}

func (a *API) listAccounts(c httpx.Context) error {
	accounts, err := a.accounts.List(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, toAccountResponse(acct))
	}
	return c.JSON(httpx.StatusOK, out)
}

func (a *API) patchAccount(c httpx.Context) error {
	var req accountPatchRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	account, err := a.accounts.UpdatePartial(c.Request().Context(), c.Param("id"), directory.AccountPatch{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toAccountResponse(account))
}

func (a *API) deleteAccount(c httpx.Context) error {
	if err := a.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.NoContent(httpx.StatusNoContent)
}
