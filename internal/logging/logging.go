// Package logging builds the slog logger shared by the CLI and the agent
// runtime. Secrets that end up in attributes are redacted before output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	redacted = "[REDACTED]"
)

type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

var sensitiveKeys = map[string]struct{}{
	"api_secret":    {},
	"apisecret":     {},
	"secret":        {},
	"token":         {},
	"access_token":  {},
	"authorization": {},
	"password":      {},
}

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Bearer\s+[A-Za-z0-9._~+/=-]+`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), // JWT
	regexp.MustCompile(`([?&](?:access_token|token)=)[^&\s:]+`),
}

func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level, ReplaceAttr: redactAttr}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q (want text or json)", opts.Format)
	}
}

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q", raw)
	}
}

// Redact masks bearer tokens, JWTs and token query parameters in s.
func Redact(s string) string {
	for _, pattern := range secretPatterns {
		if pattern.NumSubexp() > 0 {
			s = pattern.ReplaceAllString(s, "${1}"+redacted)
			continue
		}
		s = pattern.ReplaceAllString(s, redacted)
	}
	return s
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redacted)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if value := a.Value.String(); value != "" {
			return slog.String(a.Key, Redact(value))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, Redact(err.Error()))
		}
	}

	return a
}
