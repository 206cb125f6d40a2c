package usecase

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CALLER_EXISTS"
	CodeStoreError        = "STORE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func storeError(action string, err error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeStoreError,
		Message: "failed to " + action + ": " + err.Error(),
		Err:     err,
	}
}
