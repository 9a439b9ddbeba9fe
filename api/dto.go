package api

import (
	"time"

	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/directory"
)

// Transfer representations. Timestamps travel as RFC 3339 strings; the
// mappers below are the only place persistence and transfer shapes meet.

type authenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type officeRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type officePatchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type officeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type managerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	OfficeID  string `json:"officeId"`
}

type managerPatchRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	OfficeID  *string `json:"officeId"`
}

type managerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	OfficeID  string `json:"officeId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type clerkRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	OfficeID  string `json:"officeId"`
	ManagerID string `json:"managerId"`
}

type clerkPatchRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	OfficeID  *string `json:"officeId"`
	ManagerID *string `json:"managerId"`
}

type clerkResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	OfficeID  string `json:"officeId"`
	ManagerID string `json:"managerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type documentRequest struct {
	Title    string `json:"title"`
	Kind     string `json:"kind"`
	OfficeID string `json:"officeId"`
	ClerkID  string `json:"clerkId"`
}

type documentPatchRequest struct {
	Title   *string `json:"title"`
	Kind    *string `json:"kind"`
	ClerkID *string `json:"clerkId"`
}

type documentResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	OfficeID  string `json:"officeId"`
	ClerkID   string `json:"clerkId,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type accountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type accountPatchRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Enabled  *bool   `json:"enabled"`
}

// The password hash never leaves the server.
type accountResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toOfficeResponse(o directory.Office) officeResponse {
	return officeResponse{
		ID:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		Phone:     o.Phone,
		CreatedAt: formatTime(o.CreatedAt),
		UpdatedAt: formatTime(o.UpdatedAt),
	}
}

func toManagerResponse(m directory.Manager) managerResponse {
	return managerResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		OfficeID:  m.OfficeID,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTime(m.UpdatedAt),
	}
}

func toClerkResponse(c directory.Clerk) clerkResponse {
	return clerkResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		OfficeID:  c.OfficeID,
		ManagerID: c.ManagerID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func toDocumentResponse(d directory.Document) documentResponse {
	return documentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Kind:      d.Kind,
		OfficeID:  d.OfficeID,
		ClerkID:   d.ClerkID,
		CreatedAt: formatTime(d.CreatedAt),
		UpdatedAt: formatTime(d.UpdatedAt),
	}
}

func toAccountResponse(a auth.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Role:      a.Role,
		Enabled:   a.Enabled,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}
