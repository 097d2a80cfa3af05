package server

import (
	"errors"
	"io"
	"net/http"

	core "synbridge/core"
)

// CustodyLedgerFactory resolves the CustodyLedger to use for a given
// caller's request. A real deployment wires in an adapter over the
// runtime's accounts sub-module; cmd/xchainserver/main.go passes a factory
// that returns one shared in-memory ledger for local experimentation.
type CustodyLedgerFactory func() core.CustodyLedger

// Handler binds the dispatch shim (core.Dispatch) to HTTP: read the request,
// call core.Dispatch, write the encoded response.
type Handler struct {
	Ledger CustodyLedgerFactory
}

// Call returns an http.HandlerFunc for a callable method (§6.1): the
// caller address comes from X-Bridge-Caller, the body is the method's
// canonical-CBOR request, and ?check=1 requests check-only mode (§5).
func (h *Handler) Call(method string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		ctx := &core.Context{
			Caller:    caller,
			CheckMode: r.URL.Query().Get("check") == "1",
			Ledger:    h.Ledger(),
		}
		res, err := core.Dispatch(ctx, method, body)
		if err != nil {
			writeDispatchError(w, err)
			return
		}
		writeCBOR(w, res)
	}
}

// Query returns an http.HandlerFunc for a read-only method (§6.1/§4.5): no
// caller identity or check-mode is needed.
func (h *Handler) Query(method string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx := &core.Context{}
		res, err := core.Dispatch(ctx, method, nil)
		if err != nil {
			writeDispatchError(w, err)
			return
		}
		writeCBOR(w, res)
	}
}

func callerFromRequest(r *http.Request) (core.Address, error) {
	hdr := r.Header.Get("X-Bridge-Caller")
	if hdr == "" {
		return core.Address{}, errors.New("missing X-Bridge-Caller header")
	}
	return core.ParseAddress(hdr)
}

func writeCBOR(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/cbor")
	if len(body) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// writeDispatchError maps a module error code (§7) to an HTTP status; an
// unrecognized method surfaces as 404 so a caller can tell "not ours" apart
// from "ours, but rejected".
func writeDispatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrUnhandledMethod) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	var merr *core.ModuleError
	if errors.As(err, &merr) {
		switch merr.Code {
		case core.ErrCodeNotAuthorized:
			writeError(w, http.StatusForbidden, err)
		case core.ErrCodeInvalidSequenceNumber, core.ErrCodeAlreadySubmittedSignature, core.ErrCodeUnsupportedDenomination:
			writeError(w, http.StatusConflict, err)
		case core.ErrCodeInsufficientBalance:
			writeError(w, http.StatusPaymentRequired, err)
		default:
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	http.Error(w, err.Error(), status)
}
