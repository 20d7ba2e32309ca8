package logger

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces redacted values.
const MaskValue = "***REDACTED***"

// keys whose values are never written
var sensitiveKeys = map[string]bool{
	"authorization":  true,
	"x-goog-api-key": true,
	"x-api-key":      true,
	"api_key":        true,
	"apikey":         true,
	"api-key":        true,
	"password":       true,
	"secret":         true,
	"token":          true,
	"access_token":   true,
	"cookie":         true,
}

// bare "key" is excluded from the substring list; it matches too much
var sensitiveKeywords = []string{"password", "secret", "token", "auth", "credential", "api_key", "apikey"}

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`^AIza[0-9A-Za-z_\-]{30,}$`),
	regexp.MustCompile(`^sk-[A-Za-z0-9_\-]{16,}$`),
}

// credentials embedded in longer strings such as error messages and URLs
var inlinePatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{30,}`), MaskValue},
	{regexp.MustCompile(`sk-[A-Za-z0-9_\-]{16,}`), MaskValue},
	{regexp.MustCompile(`(?i)(bearer\s+)[^\s"']+`), "${1}" + MaskValue},
	{regexp.MustCompile(`([?&](?:key|api_key)=)[^&\s"']+`), "${1}" + MaskValue},
}

// SecureHandler masks credentials in attributes and messages before handing
// the record to the wrapped handler.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler wraps handler. A nil handler falls back to slog's default.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, Scrub(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized)}
}

func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitized[i] = sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		value := a.Value.String()
		if isSensitiveValue(value) {
			return slog.String(a.Key, MaskValue)
		}
		return slog.String(a.Key, Scrub(value))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil {
			return slog.String(a.Key, Scrub(err.Error()))
		}
	}

	return a
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if sensitiveKeys[key] {
		return true
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// Scrub masks credentials embedded anywhere in s.
func Scrub(s string) string {
	for _, p := range inlinePatterns {
		s = p.re.ReplaceAllString(s, p.repl)
	}
	return s
}
