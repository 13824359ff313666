package validation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"link-validator/internal/domain/validation"
	"link-validator/internal/probe"
)

const (
	msgInvalidFormat       = "Invalid URL format. Please enter a valid HTTP or HTTPS URL."
	msgInvalidFormatShort  = "Invalid URL format"
	msgSSL                 = "SSL/TLS certificate error. The URL has an invalid or untrusted certificate."
	msgHostNotFound        = "This website address doesn't exist. Please check for typos."
	msgRefused             = "Unable to connect to this website. The server may be down."
	msgTimeout             = "Connection timed out. The website is taking too long to respond."
	msgReset               = "Connection was reset. Please try again."
	msgUnreachable         = "Unable to reach this URL. Please check the address and try again."
	msgProtectedRegistered = "This is a protected resource. Ensure you have proper access."
	msgProtectedGuest      = "Protected links are not allowed for guest users. Please log in."
	msgTemporaryGuest      = "Temporary redirects are not allowed for guest users."
	msgProtocolDowngrade   = "HTTPS certificate error detected. Switched to HTTP and validated successfully."
	msgSuccess             = "URL is valid and accessible."
)

// Observation is everything the classifier needs to decide a result.
type Observation struct {
	FormatValid bool
	Outcome     *probe.Outcome
	Err         error
	Registered  bool
}

// Classify turns a probe observation into a result. Rules are applied in a
// fixed order: format, transport failure, auth statuses, other 4xx/5xx,
// redirects, content type, then the protocol downgrade warning.
func Classify(obs Observation) validation.Result {
	if !obs.FormatValid {
		return validation.NewError(validation.KindInvalidURL, msgInvalidFormat, validation.Extra{})
	}

	if obs.Err != nil || obs.Outcome == nil {
		return classifyTransportError(obs.Err)
	}

	out := obs.Outcome
	extra := downgradeExtra(out)

	switch {
	case validation.IsProtected(out.Status):
		if obs.Registered {
			return validation.NewWarning(validation.KindProtected, msgProtectedRegistered, extra)
		}
		return validation.NewError(validation.KindProtected, msgProtectedGuest, extra)

	case out.Status >= 400:
		return validation.NewError(
			validation.KindNotAvailable,
			fmt.Sprintf("URL not available (Status: %d)", out.Status),
			extra,
		)

	case validation.IsPermanentRedirect(out.Status):
		location := out.HeaderValue("Location")
		target := location
		if target == "" {
			target = "target URL"
		}
		extra.RedirectLocation = location
		return validation.NewWarning(
			validation.KindRedirectPermanent,
			"Permanent redirect detected. Consider replacing with: "+target,
			extra,
		)

	case validation.IsTemporaryRedirect(out.Status) && !obs.Registered:
		return validation.NewError(validation.KindRedirectTemporary, msgTemporaryGuest, extra)
	}

	if decision := CheckContentType(out.HeaderValue("Content-Type"), obs.Registered); !decision.Allowed {
		return validation.NewError(validation.KindInvalidContentType, decision.Reason, extra)
	}

	if out.ProtocolUpdated {
		return validation.NewWarning(validation.KindRedirectPermanent, msgProtocolDowngrade, extra)
	}

	return validation.NewSuccess(msgSuccess)
}

func downgradeExtra(out *probe.Outcome) validation.Extra {
	if !out.ProtocolUpdated {
		return validation.Extra{}
	}
	return validation.Extra{
		ProtocolUpdated: true,
		UpdatedURL:      out.UpdatedURL,
		OriginalURL:     out.OriginalURL,
	}
}

// classifyTransportError maps a failed probe onto SslError or NetworkError
// with a message a user can act on.
// TODO: the relay only reports free-form text; once it sends a failure code,
// match on that instead of keywords.
func classifyTransportError(err error) validation.Result {
	if probe.IsTLSFailure(err) {
		return validation.NewError(validation.KindSSLError, msgSSL, validation.Extra{})
	}

	return validation.NewError(validation.KindNetworkError, networkHint(err), validation.Extra{})
}

var (
	hostNotFoundKeywords = []string{"could not resolve host", "enotfound", "getaddrinfo", "no such host"}
	refusedKeywords      = []string{"connection refused", "econnrefused"}
	timeoutKeywords      = []string{"timeout", "etimedout", "timed out", "deadline exceeded"}
	resetKeywords        = []string{"reset", "econnreset"}
)

func networkHint(err error) string {
	if err == nil {
		return msgUnreachable
	}

	var dnsErr *net.DNSError
	var netErr net.Error
	msg := strings.ToLower(probe.ErrorText(err))

	switch {
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound, containsAny(msg, hostNotFoundKeywords...):
		return msgHostNotFound
	case errors.Is(err, syscall.ECONNREFUSED), containsAny(msg, refusedKeywords...):
		return msgRefused
	case errors.Is(err, probe.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout(),
		containsAny(msg, timeoutKeywords...):
		return msgTimeout
	case errors.Is(err, syscall.ECONNRESET), containsAny(msg, resetKeywords...):
		return msgReset
	default:
		return msgUnreachable
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
