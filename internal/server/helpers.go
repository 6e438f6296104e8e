package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type envelope map[string]any

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func wrapHandle(h httprouter.Handle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, httprouter.ParamsFromContext(r.Context()))
	}
}

// admit bounds how many requests hit the store at once. A request waits for a
// free slot before its handler runs and gives up if its client goes away.
func (app *Application) admit(next httprouter.Handle) http.HandlerFunc {
	return wrapHandle(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		select {
		case app.queue <- struct{}{}:
		case <-r.Context().Done():
			app.requestCancelledResponse(w, r)
			return
		}
		defer func() {
			<-app.queue
		}()
		next(w, r, ps)
	})
}

// storeContext keeps request-scoped values such as the logger but detaches the
// query from client cancellation.
func storeContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
