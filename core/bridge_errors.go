package core

import (
	"errors"
	"fmt"
)

// ErrorCode is the module-level error taxonomy surfaced to callers of the
// bridge dispatch shim. Values mirror the wire error codes so off-chain
// tooling can match on the numeric code without string-matching messages.
type ErrorCode int

const (
	ErrCodeInvalidArgument ErrorCode = iota + 1
	ErrCodeNotAuthorized
	ErrCodeInvalidSequenceNumber
	ErrCodeInsufficientBalance
	ErrCodeAlreadySubmittedSignature
	ErrCodeUnsupportedDenomination
)

var (
	ErrBridgeInvalidArgument           = errors.New("bridge: invalid argument")
	ErrBridgeNotAuthorized             = errors.New("bridge: caller is not a witness")
	ErrBridgeInvalidSequenceNumber     = errors.New("bridge: invalid sequence number")
	ErrBridgeInsufficientBalance       = errors.New("bridge: insufficient balance")
	ErrBridgeAlreadySubmittedSignature = errors.New("bridge: witness already submitted for this slot")
	ErrBridgeUnsupportedDenomination   = errors.New("bridge: unsupported denomination")
)

// ModuleError wraps one of the sentinels above with its wire code and any
// call-specific detail, the way the repo's other modules attach context to a
// sentinel via fmt.Errorf("%w", ...) rather than inventing a parallel error
// type per call site.
type ModuleError struct {
	Code ErrorCode
	Err  error
	Msg  string
}

func (e *ModuleError) Error() string {
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Msg)
}

func (e *ModuleError) Unwrap() error { return e.Err }

func newModuleError(code ErrorCode, sentinel error, msg string) *ModuleError {
	return &ModuleError{Code: code, Err: sentinel, Msg: msg}
}

func errInvalidArgument(msg string) error {
	return newModuleError(ErrCodeInvalidArgument, ErrBridgeInvalidArgument, msg)
}

func errNotAuthorized(msg string) error {
	return newModuleError(ErrCodeNotAuthorized, ErrBridgeNotAuthorized, msg)
}

func errInvalidSequenceNumber(msg string) error {
	return newModuleError(ErrCodeInvalidSequenceNumber, ErrBridgeInvalidSequenceNumber, msg)
}

func errInsufficientBalance(msg string) error {
	return newModuleError(ErrCodeInsufficientBalance, ErrBridgeInsufficientBalance, msg)
}

func errAlreadySubmittedSignature(msg string) error {
	return newModuleError(ErrCodeAlreadySubmittedSignature, ErrBridgeAlreadySubmittedSignature, msg)
}

func errUnsupportedDenomination(msg string) error {
	return newModuleError(ErrCodeUnsupportedDenomination, ErrBridgeUnsupportedDenomination, msg)
}

// mapAccountsError translates an error surfaced by the accounts collaborator
// (Transfer/Mint/Burn) into the module taxonomy: underflow maps to
// InsufficientBalance, anything else is an opaque InvalidArgument, per §6.5.
func mapAccountsError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInsufficientBalance) {
		return errInsufficientBalance(err.Error())
	}
	return errInvalidArgument(err.Error())
}
