package probe

import (
	"net/http"
	"strings"
)

// FallbackReason is reported when an https probe was replaced by its http
// equivalent after a TLS failure.
const FallbackReason = "HTTPS failed with SSL error, HTTP works"

// Envelope is the JSON body exchanged with the relay endpoint.
type Envelope struct {
	OK              bool              `json:"ok"`
	Status          int               `json:"status"`
	Headers         map[string]string `json:"headers"`
	Error           string            `json:"error,omitempty"`
	ProtocolUpdated bool              `json:"protocol_updated,omitempty"`
	UpdatedURL      string            `json:"updated_url,omitempty"`
	OriginalURL     string            `json:"original_url,omitempty"`
	Reason          string            `json:"reason,omitempty"`
}

// NewEnvelope describes a completed probe.
func NewEnvelope(o *Outcome) Envelope {
	headers := make(map[string]string, len(o.Header))
	for key, values := range o.Header {
		headers[key] = strings.Join(values, ", ")
	}

	return Envelope{
		OK:              o.Status >= 200 && o.Status < 400,
		Status:          o.Status,
		Headers:         headers,
		ProtocolUpdated: o.ProtocolUpdated,
		UpdatedURL:      o.UpdatedURL,
		OriginalURL:     o.OriginalURL,
		Reason:          o.UpdateReason,
	}
}

// FailureEnvelope describes a probe that never got a response.
func FailureEnvelope(err error) Envelope {
	return Envelope{
		OK:      false,
		Status:  0,
		Headers: map[string]string{},
		Error:   ErrorText(err),
	}
}

// Outcome converts the envelope back into an Outcome. A reported error or a
// zero status means the relay could not reach the destination at all.
func (e Envelope) Outcome() (*Outcome, error) {
	if e.Error != "" {
		return nil, &RelayError{Message: e.Error}
	}
	if e.Status == 0 {
		return nil, &RelayError{Message: ErrUnreachable.Error()}
	}

	header := make(http.Header, len(e.Headers))
	for key, value := range e.Headers {
		header.Set(key, value)
	}

	return &Outcome{
		Status:          e.Status,
		Header:          header,
		ProtocolUpdated: e.ProtocolUpdated,
		UpdatedURL:      e.UpdatedURL,
		OriginalURL:     e.OriginalURL,
		UpdateReason:    e.Reason,
	}, nil
}
