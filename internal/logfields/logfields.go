package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyModule = "module"
	KeyPath   = "path"
	KeyCount  = "count"
	KeyType   = "type"
	KeyError  = "error"
)

func Module(name string) slog.Attr { return slog.String(KeyModule, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Type(t string) slog.Attr      { return slog.String(KeyType, t) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
