package hostbridge

import (
	"errors"
	"fmt"
)

var (
	// ErrBridgeUnavailable is returned when no host capability was injected.
	ErrBridgeUnavailable = errors.New("host bridge unavailable")

	// ErrHostUnreachable wraps transport failures talking to the host.
	ErrHostUnreachable = errors.New("host unreachable")
)

// UnexpectedAckError is returned when a ping resolves with something other than AckToken.
type UnexpectedAckError struct {
	Got string
}

func (e *UnexpectedAckError) Error() string {
	return fmt.Sprintf("unexpected ping acknowledgement %q (want %q)", e.Got, AckToken)
}
