package api

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/officedesk/officedesk/httpx"
)

func TestOfficeEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	admin := f.login(t, "alice", "secret123")
	bearer := httpx.WithBearer(admin.RefreshToken)

	var created officeResponse
	if _, err := f.client.Post(ctx, "/api/v1/offices",
		officeRequest{Name: "Central", Address: "1 Main St", Phone: "555-0100"}, &created, bearer); err != nil {
		t.Fatalf("POST /offices: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatalf("POST /offices response incomplete: %+v", created)
	}

	var fetched officeResponse
	if _, err := f.client.Get(ctx, "/api/v1/offices/"+created.ID, &fetched, bearer); err != nil {
		t.Fatalf("GET /offices/%s: %v", created.ID, err)
	}
	if fetched.Name != "Central" {
		t.Fatalf("GET returned Name = %q, want Central", fetched.Name)
	}

	var patched officeResponse
	if _, err := f.client.Patch(ctx, "/api/v1/offices/"+created.ID,
		map[string]string{"address": "2 High St"}, &patched, bearer); err != nil {
		t.Fatalf("PATCH /offices/%s: %v", created.ID, err)
	}
	if patched.Address != "2 High St" || patched.Name != "Central" {
		t.Fatalf("PATCH result = %+v", patched)
	}

	var list []officeResponse
	if _, err := f.client.Get(ctx, "/api/v1/offices", &list, bearer); err != nil {
		t.Fatalf("GET /offices: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("GET /offices returned %d offices, want 1", len(list))
	}

	if _, err := f.client.Delete(ctx, "/api/v1/offices/"+created.ID, nil, bearer); err != nil {
		t.Fatalf("DELETE /offices/%s: %v", created.ID, err)
	}
	resp, _ := f.client.Get(ctx, "/api/v1/offices/"+created.ID, nil, bearer)
	if resp.StatusCode() != httpx.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want 404", resp.StatusCode())
	}
}

func TestOfficeValidationResponses(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	admin := f.login(t, "alice", "secret123")
	bearer := httpx.WithBearer(admin.RefreshToken)

	resp, err := f.client.Post(ctx, "/api/v1/offices", officeRequest{Address: "1 Main St"}, nil, bearer)
	if err == nil || resp.StatusCode() != httpx.StatusUnprocessableEntity {
		t.Fatalf("POST without name status = %d, want 422", resp.StatusCode())
	}

	resp, err = f.client.Post(ctx, "/api/v1/offices", "{not json", nil, bearer)
	if err == nil || resp.StatusCode() != httpx.StatusBadRequest {
		t.Fatalf("malformed body status = %d, want 400", resp.StatusCode())
	}

	resp, err = f.client.Patch(ctx, "/api/v1/offices/no-such-id",
		map[string]string{"name": "Renamed"}, nil, bearer)
	if err == nil || resp.StatusCode() != httpx.StatusNotFound {
		t.Fatalf("PATCH missing office status = %d, want 404", resp.StatusCode())
	}
}

func TestStaffAndDocumentFlow(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	admin := f.login(t, "alice", "secret123")
	bearer := httpx.WithBearer(admin.RefreshToken)

	var office officeResponse
	if _, err := f.client.Post(ctx, "/api/v1/offices", officeRequest{Name: "Central"}, &office, bearer); err != nil {
		t.Fatalf("POST /offices: %v", err)
	}

	var manager managerResponse
	if _, err := f.client.Post(ctx, "/api/v1/managers", managerRequest{
		FirstName: "Maria", LastName: "Santos", Email: "maria@example.com", OfficeID: office.ID,
	}, &manager, bearer); err != nil {
		t.Fatalf("POST /managers: %v", err)
	}

	resp, err := f.client.Post(ctx, "/api/v1/clerks", clerkRequest{
		FirstName: "Jonas", LastName: "Weber", OfficeID: office.ID, ManagerID: "ghost",
	}, nil, bearer)
	if err == nil || resp.StatusCode() != httpx.StatusNotFound {
		t.Fatalf("POST /clerks with unknown manager status = %d, want 404", resp.StatusCode())
	}

	var clerk clerkResponse
	if _, err := f.client.Post(ctx, "/api/v1/clerks", clerkRequest{
		FirstName: "Jonas", LastName: "Weber", OfficeID: office.ID, ManagerID: manager.ID,
	}, &clerk, bearer); err != nil {
		t.Fatalf("POST /clerks: %v", err)
	}

	var doc documentResponse
	if _, err := f.client.Post(ctx, "/api/v1/documents", documentRequest{
		Title: "Lease agreement", Kind: "contract", OfficeID: office.ID, ClerkID: clerk.ID,
	}, &doc, bearer); err != nil {
		t.Fatalf("POST /documents: %v", err)
	}
	if doc.ClerkID != clerk.ID {
		t.Fatalf("POST /documents ClerkID = %q, want %q", doc.ClerkID, clerk.ID)
	}

	// An office-scoped listing only returns that office's documents.
	var other officeResponse
	if _, err := f.client.Post(ctx, "/api/v1/offices", officeRequest{Name: "Annex"}, &other, bearer); err != nil {
		t.Fatalf("POST /offices: %v", err)
	}
	if _, err := f.client.Post(ctx, "/api/v1/documents", documentRequest{
		Title: "Memo", OfficeID: other.ID,
	}, nil, bearer); err != nil {
		t.Fatalf("POST /documents: %v", err)
	}

	var scoped []documentResponse
	if _, err := f.client.Get(ctx, "/api/v1/documents", &scoped, bearer,
		httpx.WithQuery(map[string]string{"officeId": office.ID})); err != nil {
		t.Fatalf("GET /documents?officeId: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != doc.ID {
		t.Fatalf("scoped listing = %+v", scoped)
	}

	var all []documentResponse
	if _, err := f.client.Get(ctx, "/api/v1/documents", &all, bearer); err != nil {
		t.Fatalf("GET /documents: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GET /documents returned %d documents, want 2", len(all))
	}

	// Unassigning the clerk via patch.
	var unassigned documentResponse
	if _, err := f.client.Patch(ctx, "/api/v1/documents/"+doc.ID,
		map[string]string{"clerkId": ""}, &unassigned, bearer); err != nil {
		t.Fatalf("PATCH /documents/%s: %v", doc.ID, err)
	}
	if unassigned.ClerkID != "" {
		t.Fatalf("PATCH left ClerkID = %q, want empty", unassigned.ClerkID)
	}
}

func TestManagerWritesWithManagerRole(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	admin := f.login(t, "alice", "secret123")
	manager := f.login(t, "bob", "secret123")

	var office officeResponse
	if _, err := f.client.Post(ctx, "/api/v1/offices", officeRequest{Name: "Central"}, &office,
		httpx.WithBearer(admin.RefreshToken)); err != nil {
		t.Fatalf("POST /offices: %v", err)
	}

	// staff:write belongs to the manager role.
	var created managerResponse
	if _, err := f.client.Post(ctx, "/api/v1/managers", managerRequest{
		FirstName: "Maria", LastName: "Santos", OfficeID: office.ID,
	}, &created, httpx.WithBearer(manager.RefreshToken)); err != nil {
		t.Fatalf("manager POST /managers: %v", err)
	}

	// office:write does not.
	resp, _ := f.client.Post(ctx, "/api/v1/offices", officeRequest{Name: "Annex"}, nil,
		httpx.WithBearer(manager.RefreshToken))
	if resp.StatusCode() != httpx.StatusForbidden {
		t.Fatalf("manager POST /offices status = %d, want 403", resp.StatusCode())
	}
}

func TestAccountEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	admin := f.login(t, "alice", "secret123")
	bearer := httpx.WithBearer(admin.RefreshToken)

	resp, err := f.client.Post(ctx, "/api/v1/accounts",
		accountRequest{Username: "dave", Password: "secret456", Role: "clerk"}, nil, bearer)
	if err != nil {
		t.Fatalf("POST /accounts: %v", err)
	}
	if resp.StatusCode() != httpx.StatusCreated {
		t.Fatalf("POST /accounts status = %d, want 201", resp.StatusCode())
	}

	// The response body must not leak any hash material.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		t.Fatalf("decoding account response: %v", err)
	}
	for key := range raw {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "hash") {
			t.Fatalf("account response leaks field %q", key)
		}
	}

	// The new account can log in right away.
	f.login(t, "dave", "secret456")

	resp, err = f.client.Post(ctx, "/api/v1/accounts",
		accountRequest{Username: "dave", Password: "other", Role: "clerk"}, nil, bearer)
	if err == nil || resp.StatusCode() != httpx.StatusConflict {
		t.Fatalf("duplicate username status = %d, want 409", resp.StatusCode())
	}

	resp, err = f.client.Post(ctx, "/api/v1/accounts",
		accountRequest{Username: "eve", Password: "secret456", Role: "superuser"}, nil, bearer)
	if err == nil || resp.StatusCode() != httpx.StatusUnprocessableEntity {
		t.Fatalf("unknown role status = %d, want 422", resp.StatusCode())
	}

	var list []accountResponse
	if _, err := f.client.Get(ctx, "/api/v1/accounts", &list, bearer); err != nil {
		t.Fatalf("GET /accounts: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("GET /accounts returned %d accounts, want 4", len(list))
	}

	var dave accountResponse
	for _, account := range list {
		if account.Username == "dave" {
			dave = account
		}
	}
	if dave.ID == "" {
		t.Fatal("created account missing from listing")
	}

	// Disabling the account locks it out of authentication.
	enabled := false
	if _, err := f.client.Patch(ctx, "/api/v1/accounts/"+dave.ID,
		accountPatchRequest{Enabled: &enabled}, nil, bearer); err != nil {
		t.Fatalf("PATCH /accounts/%s: %v", dave.ID, err)
	}
	resp, err = f.client.Post(ctx, "/api/v1/auth/authenticate",
		authenticateRequest{Username: "dave", Password: "secret456"}, nil)
	if err == nil || resp.StatusCode() != httpx.StatusUnauthorized {
		t.Fatalf("disabled account login status = %d, want 401", resp.StatusCode())
	}

	if _, err := f.client.Delete(ctx, "/api/v1/accounts/"+dave.ID, nil, bearer); err != nil {
		t.Fatalf("DELETE /accounts/%s: %v", dave.ID, err)
	}
	resp, _ = f.client.Get(ctx, "/api/v1/accounts/"+dave.ID, nil, bearer)
	if resp.StatusCode() != httpx.StatusNotFound {
		t.Fatalf("GET deleted account status = %d, want 404", resp.StatusCode())
	}
}
