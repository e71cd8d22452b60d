package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/folio/internal/adminservice"
)

type contextKey string

const sessionContextKey = contextKey("admin_session")

func (app *application) contextSetSession(r *http.Request, session *adminservice.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionContextKey, session)
	return r.WithContext(ctx)
}

// contextGetSession returns nil for visitors without a live admin session.
func (app *application) contextGetSession(r *http.Request) *adminservice.Session {
	session, ok := r.Context().Value(sessionContextKey).(*adminservice.Session)
	if !ok {
		return nil
	}
	return session
}
