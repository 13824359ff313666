package validation

import (
	"fmt"
	"strings"
)

// guestContentTypes lists the media type prefixes guests may link to.
var guestContentTypes = []string{"text/html", "text/plain", "image/"}

// ContentTypeDecision is the verdict of the content-type policy.
type ContentTypeDecision struct {
	Allowed bool
	Reason  string
}

// CheckContentType applies the trust-tier content policy to a Content-Type
// header value. A missing header is always allowed.
func CheckContentType(contentType string, isUserRegistered bool) ContentTypeDecision {
	if contentType == "" || isUserRegistered {
		return ContentTypeDecision{Allowed: true}
	}

	base, _, _ := strings.Cut(contentType, ";")
	base = strings.ToLower(strings.TrimSpace(base))

	for _, prefix := range guestContentTypes {
		if strings.HasPrefix(base, prefix) {
			return ContentTypeDecision{Allowed: true}
		}
	}

	return ContentTypeDecision{
		Allowed: false,
		Reason: fmt.Sprintf(
			"Content type '%s' is not allowed for guest users. Only static pages and images are permitted.",
			base,
		),
	}
}
