// Package rpc exposes the order lifecycle operations over TCP using the
// standard library JSON-RPC codec. The codec transports errors as plain
// strings, so domain errors are encoded as "CODE: message" and parsed back
// by clients with ParseCode.
package rpc

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Status codes carried in RPC error strings.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeInternal         = "INTERNAL"
)

// encodeError maps a domain error to a coded RPC error string. Unexpected
// errors degrade to INTERNAL with a generic message that leaks no detail.
func encodeError(err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return fmt.Errorf("%s: %s", CodeInvalidArgument, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return fmt.Errorf("%s: %s", CodeNotFound, err.Error())
	case errors.Is(err, errs.ErrNotPermitted):
		return fmt.Errorf("%s: %s", CodePermissionDenied, err.Error())
	default:
		return fmt.Errorf("%s: internal error", CodeInternal)
	}
}

// ParseCode extracts the status code from a coded RPC error string.
// Errors without a recognized code prefix report CodeInternal.
func ParseCode(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, code := range []string{CodeNotFound, CodeInvalidArgument, CodePermissionDenied, CodeInternal} {
		if strings.HasPrefix(msg, code+":") {
			return code
		}
	}
	return CodeInternal
}
