package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter configures the HTTP routes for the bridge's dispatch-shim
// host. Each route names the method it forwards to core.Dispatch, the way
// the transactional runtime would pick a handler by method name (§6.1).
func NewRouter(ledger CustodyLedgerFactory) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	h := &Handler{Ledger: ledger}

	r.HandleFunc("/bridge/lock", h.Call("bridge.Lock")).Methods(http.MethodPost)
	r.HandleFunc("/bridge/witness", h.Call("bridge.Witness")).Methods(http.MethodPost)
	r.HandleFunc("/bridge/release", h.Call("bridge.Release")).Methods(http.MethodPost)
	r.HandleFunc("/bridge/next-sequence", h.Query("bridge.NextSequenceNumbers")).Methods(http.MethodGet)
	r.HandleFunc("/bridge/params", h.Query("bridge.Parameters")).Methods(http.MethodGet)

	return r
}
