package api

import (
	"errors"

	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/httpx"
)

func (a *API) authenticate(c httpx.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}

	pair, err := a.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return httpx.HTTPError(httpx.StatusUnauthorized, "bad credentials")
		}
		return err
	}
	return c.JSON(httpx.StatusOK, tokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (a *API) refresh(c httpx.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return httpx.HTTPError(httpx.StatusBadRequest, "malformed request body")
	}
	if req.Token == "" {
		return httpx.HTTPError(httpx.StatusBadRequest, "missing refresh token")
	}

	pair, err := a.auth.Refresh(c.Request().Context(), req.Token)
	if err != nil {
		// Expired, tampered, malformed, and unknown-subject tokens all
		// collapse into one response.
		if errors.Is(err, auth.ErrBadCredentials) ||
			errors.Is(err, auth.ErrTokenExpired) ||
			errors.Is(err, auth.ErrTokenMalformed) ||
			errors.Is(err, auth.ErrTokenInvalidSignature) ||
			errors.Is(err, auth.ErrTokenUnsupportedAlgorithm) ||
			errors.Is(err, auth.ErrTokenInvalidClaims) {
			return httpx.HTTPError(httpx.StatusUnauthorized, "untrusted token")
		}
		return err
	}
	return c.JSON(httpx.StatusOK, tokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
