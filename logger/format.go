package logger

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
)

// attrFormatter is the signature of slog.HandlerOptions.ReplaceAttr.
type attrFormatter = func(groups []string, a slog.Attr) slog.Attr

// composeAttrFmt chains non-nil formatters, nil is returned when nothing is left.
func composeAttrFmt(f ...attrFormatter) attrFormatter {
	f = slices.DeleteFunc(f, func(f attrFormatter) bool { return f == nil })
	switch len(f) {
	case 0:
		return nil
	case 1:
		return f[0]
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		for _, format := range f {
			a = format(groups, a)
		}
		return a
	}
}

func formatTimeAttr(format string) attrFormatter {
	switch format {
	case "":
		return nil
	case "none":
		return func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.TimeKey {
			return a
		}
		if t := a.Value.Time(); !t.IsZero() {
			a.Value = slog.StringValue(t.Format(format))
		}
		return a
	}
}

func formatDataAttrAsJSON(groups []string, a slog.Attr) slog.Attr {
	if a.Key != DataKey || a.Value.Kind() != slog.KindAny {
		return a
	}
	if b, err := json.Marshal(a.Value.Any()); err == nil {
		a.Value = slog.StringValue(string(b))
	}
	return a
}

// formatAttrConsole renames attributes to the names zerolog.ConsoleWriter expects.
func formatAttrConsole(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.MessageKey:
		a.Key = consoleMessageKey
	case ErrorKey:
		a.Key = consoleErrorKey
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(consoleLevel(lvl))
		}
	}
	return a
}

/*
formatAttrECS maps well known attributes to Elastic Common Schema fields.
Transaction signature goes to "transaction.id", account and slot are kept
under custom "solana" namespace.
*/
func formatAttrECS(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.MessageKey:
		return slog.String("message", a.Value.String())
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok {
			return a
		}
		return slog.Group("log",
			slog.Group("origin",
				slog.String("function", shortFuncName(src.Function)),
				slog.Group("file", slog.String("name", src.File), slog.Int("line", src.Line)),
			),
		)
	case ErrorKey:
		return slog.Group("error", slog.Any("message", a.Value.Any()))
	case SignatureKey:
		return slog.Group("transaction", slog.String("id", a.Value.String()))
	case AccountKey:
		return slog.Group("solana", slog.String("account", a.Value.String()))
	case SlotKey:
		return slog.Group("solana", slog.Any("slot", a.Value.Any()))
	case DataKey:
		// values of different types under the same key would conflict in the index
		return slog.Group(DataKey, slog.Any(dataName(a.Value), a.Value))
	}
	return a
}

// dataName returns type name of "v" usable as ECS field name.
func dataName(v slog.Value) string {
	if k := v.Kind(); k != slog.KindAny && k != slog.KindLogValuer {
		return k.String()
	}
	name := reflect.TypeOf(v.Any()).String()
	return strings.ReplaceAll(strings.TrimLeft(name, "*"), ".", "_")
}

// shortFuncName drops the package path from fully qualified function name.
func shortFuncName(fn string) string {
	// github.com/kagren/solana-sdk/cli/sanitizer/cmd.newBaseCmd.func1
	_, fn = filepath.Split(fn)
	if _, name, ok := strings.Cut(fn, "."); ok {
		return name
	}
	return fn
}
