// Package api exposes the REST surface: request/response mapping, route
// registration, and the static authorization rule table.
package api

import (
	"errors"

	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/directory"
	"github.com/officedesk/officedesk/httpx"
)

// API bundles the services behind the HTTP handlers.
type API struct {
	auth      *auth.Service
	offices   *directory.OfficeService
	staff     *directory.StaffService
	documents *directory.DocumentService
	accounts  *directory.AccountService
}

// Config wires the services required by the API.
type Config struct {
	Auth      *auth.Service
	Offices   *directory.OfficeService
	Staff     *directory.StaffService
	Documents *directory.DocumentService
	Accounts  *directory.AccountService
}

func New(cfg Config) (*API, error) {
	if cfg.Auth == nil || cfg.Offices == nil || cfg.Staff == nil || cfg.Documents == nil || cfg.Accounts == nil {
		return nil, errors.New("api: all services are required")
	}
	return &API{
		auth:      cfg.Auth,
		offices:   cfg.Offices,
		staff:     cfg.Staff,
		documents: cfg.Documents,
		accounts:  cfg.Accounts,
	}, nil
}

// mapError translates service errors into HTTP errors. Authentication
// failures on the auth routes are handled in their handlers; everything
// else funnels through here.
func mapError(err error) error {
	switch {
	case errors.Is(err, directory.ErrNotFound), errors.Is(err, auth.ErrAccountNotFound):
		return httpx.HTTPError(httpx.StatusNotFound, "not found")
	case errors.Is(err, directory.ErrConflict):
		return httpx.HTTPError(httpx.StatusConflict, "conflict")
	case errors.Is(err, directory.ErrInvalidInput),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordTooLong):
		return httpx.HTTPError(httpx.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
