package server

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wisp167/ShoppingList/internal/data"
)

func (app *Application) listUserTreesHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trees, err := app.models.Lists.ListUserTrees(storeContext(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(trees) == 0 {
		app.recordNotFoundResponse(w, r, "No lists found")
		return
	}

	err = app.writeJSON(w, http.StatusOK, trees, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) showUserTreeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	tree, err := app.models.Lists.GetUserTree(storeContext(r), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, "User not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, tree, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
