package api

import (
	"errors"
	"net/http"
	"strings"

	"bitsbay/internal/auth"
	"bitsbay/internal/models"
	"bitsbay/internal/store"
)

// handleGoogleLogin exchanges a Google ID token for an application session,
// creating the user on first sign-in.
func (a *API) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondFailure(w, validationError(err.Error()))
		return
	}
	if strings.TrimSpace(req.IDToken) == "" {
		respondFailure(w, validationError("ID token is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	claims, err := a.google.Verify(ctx, req.IDToken)
	if err != nil {
		respondFailure(w, authenticationError(err.Error()))
		return
	}
	if claims.Email == "" {
		respondFailure(w, validationError("email not found in token"))
		return
	}

	created := false
	user, err := a.store.Users.GetByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user = &models.User{
			Email:             claims.Email,
			FirstName:         claims.GivenName,
			LastName:          claims.FamilyName,
			HasUsablePassword: false,
		}
		if err := a.store.Users.Create(ctx, user); err != nil {
			respondFailure(w, err)
			return
		}
		created = true
	case err != nil:
		respondFailure(w, err)
		return
	}

	pair, err := a.issueSession(r, user)
	if err != nil {
		respondFailure(w, err)
		return
	}

	a.metrics.RecordSignIn(created)

	respondJSON(w, http.StatusOK, map[string]any{
		"access":           pair.Access,
		"refresh":          pair.Refresh,
		"has_phone_number": user.HasPhoneNumber(),
	})
}

// handleRefreshToken exchanges a refresh token for a fresh pair. Refresh
// tokens are single use: the presented one is blacklisted during rotation.
func (a *API) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondFailure(w, validationError(err.Error()))
		return
	}
	if req.Refresh == "" {
		respondFailure(w, validationError("refresh token is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	session, err := a.redeemableSession(r, req.Refresh)
	if err != nil {
		respondFailure(w, err)
		return
	}

	pair, err := a.tokens.IssuePair(session.UserID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	replacement := &models.Session{
		UserID:       session.UserID,
		RefreshToken: pair.Refresh,
		ExpiresAt:    pair.RefreshExpiresAt,
	}
	if err := a.store.Sessions.Rotate(ctx, session.ID, replacement); err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// handleLogout blacklists the presented refresh token.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondFailure(w, validationError(err.Error()))
		return
	}
	if req.Refresh == "" {
		respondFailure(w, validationError("refresh token is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	session, err := a.redeemableSession(r, req.Refresh)
	if err != nil {
		respondFailure(w, err)
		return
	}

	identity := identityFrom(r)
	if identity == nil || *identity != session.UserID {
		respondFailure(w, permissionError("refresh token belongs to a different user"))
		return
	}

	if err := a.store.Sessions.Revoke(ctx, session.ID); err != nil {
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (a *API) issueSession(r *http.Request, user *models.User) (auth.TokenPair, error) {
	pair, err := a.tokens.IssuePair(user.ID)
	if err != nil {
		return auth.TokenPair{}, err
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: pair.Refresh,
		ExpiresAt:    pair.RefreshExpiresAt,
	}
	if err := a.store.Sessions.Create(ctx, session); err != nil {
		return auth.TokenPair{}, err
	}
	return pair, nil
}

// redeemableSession validates the refresh token signature and looks up its
// session row, which must be unrevoked and unexpired.
func (a *API) redeemableSession(r *http.Request, refresh string) (*models.Session, error) {
	if _, err := a.tokens.Parse(refresh, auth.TokenTypeRefresh); err != nil {
		return nil, authenticationError("invalid or expired refresh token")
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	session, err := a.store.Sessions.GetByRefreshToken(ctx, refresh)
	if errors.Is(err, store.ErrNotFound) {
		return nil, authenticationError("unknown refresh token")
	}
	if err != nil {
		return nil, err
	}
	if !session.Usable(timeNow()) {
		return nil, authenticationError("refresh token has been blacklisted")
	}
	return session, nil
}
