package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// public site
	router.HandlerFunc(http.MethodGet, "/v1/posts", app.trackPageView(app.listPostsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id", app.showPostHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.listCategoriesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/newsletter/subscribe", app.rateLimit(app.subscribeHandler))
	router.HandlerFunc(http.MethodPost, "/v1/analytics/events", app.trackEventHandler)

	// admin
	router.HandlerFunc(http.MethodPost, "/v1/admin/login", app.adminLoginHandler)
	router.HandlerFunc(http.MethodPost, "/v1/admin/logout", app.requireAdmin(app.adminLogoutHandler))
	router.HandlerFunc(http.MethodGet, "/v1/admin/session", app.adminSessionHandler)
	router.HandlerFunc(http.MethodGet, "/v1/admin/posts", app.requireAdmin(app.adminListPostsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/admin/posts", app.requireAdmin(app.createPostHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/admin/posts/:id", app.requireAdmin(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/posts/:id", app.requireAdmin(app.deletePostHandler))
	router.HandlerFunc(http.MethodGet, "/v1/admin/stats", app.requireAdmin(app.adminStatsHandler))

	return app.recoverPanic(app.logRequest(app.enableCORS(app.authenticate(router))))
}
