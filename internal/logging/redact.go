package logging

import (
	"net/url"
	"strings"
)

// secretAttrPatterns are substrings of attribute keys whose values are
// masked. Matching is case-insensitive. A bare "key" attribute names a
// setting and is never masked.
var secretAttrPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"CREDENTIAL",
	"API_KEY",
	"APIKEY",
	"PRIVATE_KEY",
}

// tokenPrefixes mark values that are credentials regardless of their key.
var tokenPrefixes = []string{
	"ghp_", "gho_", "ghu_", "ghs_", "ghr_",
	"sk-",
	"AKIA",
	"xoxb-", "xoxp-", "xoxa-", "xoxr-",
}

// ShouldMask reports whether an attribute key names a credential.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretAttrPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue hides all but the last four characters of value.
// Values of four characters or fewer are fully masked.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL masks the password of a URL with embedded credentials.
// Unparseable URLs and URLs without a password are returned unchanged.
func MaskURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}
	password, ok := parsed.User.Password()
	if !ok || password == "" {
		return rawURL
	}
	parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
	return parsed.String()
}
