package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"gorm.io/gorm"
)

// Kind classifies gateway failures at the transport boundary so retry
// decisions never depend on message text.
type Kind int

const (
	KindInternal Kind = iota
	KindTransient
	KindNotFound
	KindValidation
)

type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from an error chain. Unclassified
// errors count as internal.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindInternal
}

// classify wraps a raw storage/network error with its kind. Classification
// happens here, once, at the boundary.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}

	kind := KindInternal
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = KindNotFound
	case isTransient(err):
		kind = KindTransient
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}

func invalid(op, msg string) error {
	return &Error{Op: op, Kind: KindValidation, Err: errors.New(msg)}
}
