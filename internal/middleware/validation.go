package middleware

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
)

// Input length limits.
const (
	MaxURLLen         = 2048
	MaxDisplayNameLen = 100
)

// controlRe matches ASCII control characters, which never appear in a valid
// URL or display name.
var controlRe = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateURL checks a link submitted for resolution. The link does not
// need a scheme; the resolver accepts bare domains.
func ValidateURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "url is required"
	}
	if len(raw) > MaxURLLen {
		return "", "url must be at most 2048 characters"
	}
	if controlRe.MatchString(raw) || strings.ContainsAny(raw, " \t") {
		return "", "url contains invalid characters"
	}
	return raw, ""
}

// ValidateDisplayName checks a display name path parameter.
func ValidateDisplayName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "name is required"
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", "name must be at most 100 characters"
	}
	if !utf8.ValidString(name) || controlRe.MatchString(name) {
		return "", "name contains invalid characters"
	}
	return name, ""
}
