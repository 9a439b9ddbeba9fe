package api

import (
	"net/http"

	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/httpx"
)

// Routes returns the full route table for the office-management API.
func (a *API) Routes() []httpx.Route {
	return []httpx.Route{
		{Method: http.MethodPost, Path: "/api/v1/auth/authenticate", Handler: a.authenticate},
		{Method: http.MethodPost, Path: "/api/v1/auth/refresh", Handler: a.refresh},

		{Method: http.MethodPost, Path: "/api/v1/offices", Handler: a.createOffice},
		{Method: http.MethodGet, Path: "/api/v1/offices", Handler: a.listOffices},
		{Method: http.MethodGet, Path: "/api/v1/offices/:id", Handler: a.getOffice},
		{Method: http.MethodPatch, Path: "/api/v1/offices/:id", Handler: a.patchOffice},
		{Method: http.MethodDelete, Path: "/api/v1/offices/:id", Handler: a.deleteOffice},

		{Method: http.MethodPost, Path: "/api/v1/managers", Handler: a.createManager},
		{Method: http.MethodGet, Path: "/api/v1/managers", Handler: a.listManagers},
		{Method: http.MethodGet, Path: "/api/v1/managers/:id", Handler: a.getManager},
		{Method: http.MethodPatch, Path: "/api/v1/managers/:id", Handler: a.patchManager},
		{Method: http.MethodDelete, Path: "/api/v1/managers/:id", Handler: a.deleteManager},

		{Method: http.MethodPost, Path: "/api/v1/clerks", Handler: a.createClerk},
		{Method: http.MethodGet, Path: "/api/v1/clerks", Handler: a.listClerks},
		{Method: http.MethodGet, Path: "/api/v1/clerks/:id", Handler: a.getClerk},
		{Method: http.MethodPatch, Path: "/api/v1/clerks/:id", Handler: a.patchClerk},
		{Method: http.MethodDelete, Path: "/api/v1/clerks/:id", Handler: a.deleteClerk},

		{Method: http.MethodPost, Path: "/api/v1/documents", Handler: a.createDocument},
		{Method: http.MethodGet, Path: "/api/v1/documents", Handler: a.listDocuments},
		{Method: http.MethodGet, Path: "/api/v1/documents/:id", Handler: a.getDocument},
		{Method: http.MethodPatch, Path: "/api/v1/documents/:id", Handler: a.patchDocument},
		{Method: http.MethodDelete, Path: "/api/v1/documents/:id", Handler: a.deleteDocument},

		{Method: http.MethodPost, Path: "/api/v1/accounts", Handler: a.createAccount},
		{Method: http.MethodGet, Path: "/api/v1/accounts", Handler: a.listAccounts},
		{Method: http.MethodGet, Path: "/api/v1/accounts/:id", Handler: a.getAccount},
		{Method: http.MethodPatch, Path: "/api/v1/accounts/:id", Handler: a.patchAccount},
		{Method: http.MethodDelete, Path: "/api/v1/accounts/:id", Handler: a.deleteAccount},
	}
}

// Register wires the route table onto an Echo instance.
func (a *API) Register(e *httpx.Echo) {
	e.RegisterRoutes(a.Routes()...)
}

// PolicyRules returns the access rules for the API surface. Method-specific
// rules are evaluated before pattern-only rules, and the first match wins.
func PolicyRules() []auth.Rule {
	return []auth.Rule{
		{Pattern: "/api/v1/auth/**", Public: true},

		{Method: http.MethodDelete, Pattern: "/api/v1/**", Authorities: []string{auth.AuthorityAdmin}},

		{Method: http.MethodPost, Pattern: "/api/v1/offices", Authorities: []string{auth.PermOfficeWrite}},
		{Method: http.MethodPatch, Pattern: "/api/v1/offices/*", Authorities: []string{auth.PermOfficeWrite}},

		{Method: http.MethodPost, Pattern: "/api/v1/managers", Authorities: []string{auth.PermStaffWrite}},
		{Method: http.MethodPatch, Pattern: "/api/v1/managers/*", Authorities: []string{auth.PermStaffWrite}},
		{Method: http.MethodPost, Pattern: "/api/v1/clerks", Authorities: []string{auth.PermStaffWrite}},
		{Method: http.MethodPatch, Pattern: "/api/v1/clerks/*", Authorities: []string{auth.PermStaffWrite}},

		{Method: http.MethodPost, Pattern: "/api/v1/documents", Authorities: []string{auth.PermDocumentWrite}},
		{Method: http.MethodPatch, Pattern: "/api/v1/documents/*", Authorities: []string{auth.PermDocumentWrite}},

		{Method: http.MethodPost, Pattern: "/api/v1/accounts", Authorities: []string{auth.AuthorityAdmin, auth.PermAccountWrite}},
		{Method: http.MethodPatch, Pattern: "/api/v1/accounts/*", Authorities: []string{auth.AuthorityAdmin, auth.PermAccountWrite}},
		{Method: http.MethodGet, Pattern: "/api/v1/accounts/**", Authorities: []string{auth.AuthorityAdmin}},

		{Pattern: "/api/v1/**"},
	}
}
