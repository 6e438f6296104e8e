package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// healthcheckHandler answers with the store's clock. A store failure is a 500
// like on every other route.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	app.serveRows(w, r, app.models.Health.Now)
}
