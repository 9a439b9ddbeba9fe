package api

import (
	"github.com/officedesk/officedesk/directory"
	"github.com/officedesk/officedesk/httpx"
)

func (a *API) createDocument(c httpx.Context) error {
	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	doc, err := a.documents.Create(c.Request().Context(), directory.Document{
		Title:    req.Title,
		Kind:     req.Kind,
		OfficeID: req.OfficeID,
		ClerkID:  req.ClerkID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusCreated, toDocumentResponse(doc))
}

func (a *API) getDocument(c httpx.Context) error {
	doc, err := a.documents.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toDocumentResponse(doc))
}

func (a *API) listDocuments(c httpx.Context) error {
	var (
		docs []directory.Document
		err  error
	)
	if officeID := c.QueryParam("officeId"); officeID != "" {
		docs, err = a.documents.ListByOffice(c.Request().Context(), officeID)
	} else {
		docs, err = a.documents.List(c.Request().Context())
	}
	if err != nil {
		return mapError(err)
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return c.JSON(httpx.StatusOK, out)
}

func (a *API) patchDocument(c httpx.Context) error {
	var req documentPatchRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	doc, err := a.documents.UpdatePartial(c.Request().Context(), c.Param("id"), directory.DocumentPatch{
		Title:   req.Title,
		Kind:    req.Kind,
		ClerkID: req.ClerkID,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(httpx.StatusOK, toDocumentResponse(doc))
}

func (a *API) deleteDocument(c httpx.Context) error {
	if err := a.documents.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.NoContent(httpx.StatusNoContent)
}
