// Package failures defines the error taxonomy reported back to chat users.
package failures

import (
	"errors"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindService    Kind = "service"
	KindRead       Kind = "read"
)

// Failure annotates an error with its kind and the operation that produced it.
// Error returns the underlying message unchanged so it can be shown verbatim.
type Failure struct {
	Kind Kind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f == nil || f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

func Validation(op string, err error) error {
	return newFailure(KindValidation, op, err)
}

func Service(op string, err error) error {
	return newFailure(KindService, op, err)
}

func Read(op string, err error) error {
	return newFailure(KindRead, op, err)
}

func newFailure(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost Failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Label is the user-facing heading for an error.
func Label(err error) string {
	kind, ok := KindOf(err)
	if !ok {
		return "Error"
	}
	switch kind {
	case KindValidation:
		return "Validation Error"
	case KindService:
		return "AWS Service Error"
	case KindRead:
		return "Read Error"
	default:
		return "Error"
	}
}
