package validation

import (
	"encoding/json"
	"slices"
)

// ErrorKind names the reason behind a non-success result. Severity is attached
// per occurrence: Protected and RedirectPermanent can be warnings or errors.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindInvalidURL         ErrorKind = "invalid_url"
	KindNotAvailable       ErrorKind = "not_available"
	KindProtected          ErrorKind = "protected"
	KindSSLError           ErrorKind = "ssl_error"
	KindRedirectPermanent  ErrorKind = "redirect_permanent"
	KindRedirectTemporary  ErrorKind = "redirect_temporary"
	KindInvalidContentType ErrorKind = "invalid_content_type"
	KindNetworkError       ErrorKind = "network_error"
)

// MarshalJSON encodes KindNone as null.
func (k ErrorKind) MarshalJSON() ([]byte, error) {
	if k == KindNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(k))
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityDefault Severity = "default"
)

var borderColors = map[Severity]string{
	SeverityError:   "#dc3545",
	SeverityWarning: "#ffc107",
	SeveritySuccess: "#28a745",
	SeverityDefault: "#ced4da",
}

// Color returns the border color a UI should paint for the severity.
func (s Severity) Color() string {
	if c, ok := borderColors[s]; ok {
		return c
	}
	return borderColors[SeverityDefault]
}

// Status code groups used by the classifier.
var (
	PermanentRedirectCodes = []int{301, 308}
	TemporaryRedirectCodes = []int{302, 303, 307}
	ProtectedCodes         = []int{401, 403}
)

func IsPermanentRedirect(status int) bool { return slices.Contains(PermanentRedirectCodes, status) }
func IsTemporaryRedirect(status int) bool { return slices.Contains(TemporaryRedirectCodes, status) }
func IsProtected(status int) bool         { return slices.Contains(ProtectedCodes, status) }

// Extra carries situational data attached to a result.
type Extra struct {
	RedirectLocation string `json:"redirectLocation,omitempty"`
	UpdatedURL       string `json:"updatedUrl,omitempty"`
	OriginalURL      string `json:"originalUrl,omitempty"`
	ProtocolUpdated  bool   `json:"protocolUpdated,omitempty"`
}

// Result is the outcome of validating one URL. Build it with NewError,
// NewWarning or NewSuccess so that exactly one of IsError, IsWarning or
// neither holds and Valid == !IsError.
type Result struct {
	Valid       bool      `json:"valid"`
	IsError     bool      `json:"isError"`
	IsWarning   bool      `json:"isWarning"`
	ErrorType   ErrorKind `json:"errorType"`
	Message     string    `json:"message"`
	BorderColor Severity  `json:"borderColor"`
	Extra       Extra     `json:"extra"`
}

func NewError(kind ErrorKind, message string, extra Extra) Result {
	return Result{
		Valid:     false,
		IsError:   true,
		ErrorType: kind,
		Message:   message,
		Extra:     extra,
	}.withSeverity()
}

func NewWarning(kind ErrorKind, message string, extra Extra) Result {
	return Result{
		Valid:     true,
		IsWarning: true,
		ErrorType: kind,
		Message:   message,
		Extra:     extra,
	}.withSeverity()
}

func NewSuccess(message string) Result {
	return Result{
		Valid:   true,
		Message: message,
	}.withSeverity()
}

func (r Result) withSeverity() Result {
	r.BorderColor = SeverityFor(r.IsError, r.IsWarning, r.Valid)
	return r
}

// SeverityFor maps the result flags onto a severity.
func SeverityFor(isError, isWarning, valid bool) Severity {
	switch {
	case isError:
		return SeverityError
	case isWarning:
		return SeverityWarning
	case valid:
		return SeveritySuccess
	default:
		return SeverityDefault
	}
}
