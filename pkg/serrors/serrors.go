package serrors

// Kind classifies an error into the service's failure taxonomy. The HTTP layer
// maps kinds to status codes; services and repositories only deal in kinds.
type Kind string

const (
	KindInternal         Kind = "internal"
	KindNotFound         Kind = "not_found"
	KindInvalidArgument  Kind = "invalid_argument"
	KindPermissionDenied Kind = "permission_denied"
	KindConflict         Kind = "conflict"
)

// BaseError is a coded error carried across service boundaries.
type BaseError struct {
	Code         string
	Message      string
	Knd          Kind
	TemplateData map[string]string
}

func (e *BaseError) Error() string {
	return e.Message
}

func (e *BaseError) Kind() Kind {
	if e.Knd == "" {
		return KindInternal
	}
	return e.Knd
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	e.TemplateData = data
	return e
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Knd: KindInternal}
}

func NotFound(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Knd: KindNotFound}
}

func InvalidArgument(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Knd: KindInvalidArgument}
}

func PermissionDenied(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Knd: KindPermissionDenied}
}

func Conflict(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message, Knd: KindConflict}
}
