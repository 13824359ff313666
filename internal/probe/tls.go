package probe

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

var tlsKeywords = []string{"ssl", "tls", "certificate", "certification", "handshake"}

// networkMarkers identify relay texts that name a failure before any TLS
// exchange; the host name quoted in them may itself contain a TLS keyword.
var networkMarkers = []string{
	"no such host", "could not resolve host", "getaddrinfo", "enotfound",
	"connection refused", "econnrefused",
}

// IsTLSFailure reports whether err looks like a TLS or certificate failure.
// Typed errors decide first. Keywords are only matched when nothing typed
// explains the failure, as with relay-reported text.
func IsTLSFailure(err error) bool {
	if err == nil || isNetworkFailure(err) {
		return false
	}

	var (
		verifyErr    *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &verifyErr),
		errors.As(err, &recordErr),
		errors.As(err, &alertErr),
		errors.As(err, &authorityErr),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidErr):
		return true
	}

	msg := strings.ToLower(ErrorText(err))
	return !containsAny(msg, networkMarkers...) && containsAny(msg, tlsKeywords...)
}

// isNetworkFailure reports a DNS, refused, reset or timeout failure carried
// as a typed error.
func isNetworkFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, ErrTimeout) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ErrorText returns the part of err worth showing to a classifier: the relay
// message, or the transport error without the request URL prefixed to it.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}

	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr.Message
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}

	return err.Error()
}
