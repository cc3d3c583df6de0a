// Package logfields holds the canonical slog attribute keys used across regdoc.
package logfields

import "log/slog"

const (
	KeyCategory   = "category"
	KeyEntry      = "entry"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Category(c string) slog.Attr { return slog.String(KeyCategory, c) }
func Entry(name string) slog.Attr { return slog.String(KeyEntry, name) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func DurationMS(ms int64) slog.Attr { return slog.Int64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Discard returns a logger that drops every record; handy as a nil default.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
