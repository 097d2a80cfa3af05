package core

import "errors"

// MethodKind distinguishes a state-mutating callable from a read-only
// query (§6.1); queries never run with CheckMode and never fail except on
// a malformed body.
type MethodKind int

const (
	MethodCallable MethodKind = iota
	MethodQuery
)

// ErrUnhandledMethod signals the dispatch shim that a method name is not
// one the bridge module owns; the host runtime is expected to forward the
// call elsewhere (§6.1: "Unknown methods are forwarded back to the host as
// unhandled").
var ErrUnhandledMethod = errors.New("bridge: unhandled method")

const (
	MethodLock                = "bridge.Lock"
	MethodWitness              = "bridge.Witness"
	MethodRelease              = "bridge.Release"
	MethodNextSequenceNumbers = "bridge.NextSequenceNumbers"
	MethodParameters          = "bridge.Parameters"
)

// Dispatch maps a method name to its handler: decodes body, runs the
// handler against ctx, and CBOR-encodes the result. Any handler error is
// returned without an encoded result. Dispatch does not itself roll back
// store or ledger writes that a handler made before it failed; discarding
// them is left to the host's transactional store. Every handler calls
// Broadcast only as its last step, so a handler that fails earlier emits no
// event.
func Dispatch(ctx *Context, method string, body []byte) ([]byte, error) {
	switch method {
	case MethodLock:
		var req LockRequest
		if err := decodeRequestBody(body, &req); err != nil {
			return nil, errInvalidArgument(err.Error())
		}
		res, err := Lock(ctx, req)
		if err != nil {
			return nil, err
		}
		return encodeCBOR(res)

	case MethodWitness:
		var req WitnessRequest
		if err := decodeRequestBody(body, &req); err != nil {
			return nil, errInvalidArgument(err.Error())
		}
		if err := Witness(ctx, req); err != nil {
			return nil, err
		}
		return nil, nil

	case MethodRelease:
		var req ReleaseRequest
		if err := decodeRequestBody(body, &req); err != nil {
			return nil, errInvalidArgument(err.Error())
		}
		if err := Release(ctx, req); err != nil {
			return nil, err
		}
		return nil, nil

	case MethodNextSequenceNumbers:
		if len(body) != 0 {
			return nil, errInvalidArgument("query takes no body")
		}
		res, err := NextSequenceNumbers()
		if err != nil {
			return nil, err
		}
		return encodeCBOR(res)

	case MethodParameters:
		if len(body) != 0 {
			return nil, errInvalidArgument("query takes no body")
		}
		res, err := QueryParameters()
		if err != nil {
			return nil, err
		}
		return encodeCBOR(res)

	default:
		return nil, ErrUnhandledMethod
	}
}

// MethodKindOf reports whether method is a callable or a query, for host
// runtimes that need to pick a code path (e.g. whether CheckMode even
// applies) before calling Dispatch.
func MethodKindOf(method string) (MethodKind, bool) {
	switch method {
	case MethodLock, MethodWitness, MethodRelease:
		return MethodCallable, true
	case MethodNextSequenceNumbers, MethodParameters:
		return MethodQuery, true
	default:
		return 0, false
	}
}
