package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *Application) routes() *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.admit(app.healthcheckHandler))
	router.HandlerFunc(http.MethodGet, "/aisles", app.admit(app.listAislesHandler))
	router.HandlerFunc(http.MethodGet, "/products", app.admit(app.listProductsHandler))
	router.HandlerFunc(http.MethodGet, "/shops", app.admit(app.listShopsHandler))
	router.HandlerFunc(http.MethodGet, "/users", app.admit(app.listUsersHandler))
	router.HandlerFunc(http.MethodGet, "/lists", app.admit(app.listUserTreesHandler))
	router.HandlerFunc(http.MethodGet, "/lists/:id", app.admit(app.showUserTreeHandler))
	return router
}

// handler wraps the router with the middleware every request goes through.
func (app *Application) handler() http.Handler {
	var h http.Handler = app.routes()
	if app.config.CORS.Enabled {
		h = app.enableCORS(h)
	}
	return app.middleware(h)
}

// middleware recovers panics inside the request logger so a panicking request
// still gets its request id and an access log line.
func (app *Application) middleware(next http.Handler) http.Handler {
	return app.requestID(app.logRequest(app.recoverPanic(next)))
}
