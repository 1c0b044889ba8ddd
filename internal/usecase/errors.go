package usecase

import "errors"

// DomainError is a rule violation the client can fix. Code doubles as the
// error key returned to the client.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps persistence or transport failures.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func databaseError(msg string, err error) error {
	return &TechnicalError{Code: "DATABASE_ERROR", Message: msg, Err: err}
}

// errIDNotFound reports a replace whose row vanished after the handler's
// existence check.
func errIDNotFound() error {
	return &DomainError{Code: "idnotfound", Message: "Entity not found"}
}
