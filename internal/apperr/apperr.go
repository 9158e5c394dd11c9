package apperr

import "errors"

// Kind classifies an operation failure. The HTTP mapping lives in one place
// (util.HandleError); services only ever decide the kind.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthorization
	KindNotFound
	KindConflict
	KindStaleSession
	KindStorage
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Code: "validation_failed", Message: message}
}

func Authorization(message string) error {
	return &Error{Kind: KindAuthorization, Code: "forbidden", Message: message}
}

// NotFound covers both "does not exist" and "exists but not visible"; the two
// are indistinguishable to the caller so private content is not leaked.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Code: "conflict", Message: message}
}

// StaleSession means the exam key no longer matches the live question set.
// The caller must restart the exam, not retry.
func StaleSession(message string) error {
	return &Error{Kind: KindStaleSession, Code: "stale_session", Message: message}
}

func Storage(err error) error {
	return &Error{Kind: KindStorage, Code: "storage_error", Message: "internal error", Err: err}
}

// KindOf unwraps err to its Kind. Unclassified errors count as storage
// failures so they are logged and surfaced opaquely.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "storage_error"
}

func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
