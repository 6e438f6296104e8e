package server

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wisp167/ShoppingList/internal/data"
)

func (app *Application) listAislesHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	app.serveRows(w, r, app.models.Catalog.ListAisles)
}

func (app *Application) listProductsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	app.serveRows(w, r, app.models.Catalog.ListProducts)
}

func (app *Application) listShopsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	app.serveRows(w, r, app.models.Catalog.ListShops)
}

func (app *Application) listUsersHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	app.serveRows(w, r, app.models.Catalog.ListUsers)
}

func (app *Application) serveRows(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]data.Row, error)) {
	rows, err := list(storeContext(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, rows, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
