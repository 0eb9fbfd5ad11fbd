package logger

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kagren/solana-sdk/types"
)

type customLogValuer int

func (v customLogValuer) LogValue() slog.Value { return slog.IntValue(int(v)) }

func Test_formatTimeAttr(t *testing.T) {
	t.Run("empty format string", func(t *testing.T) {
		require.Nil(t, formatTimeAttr(""))
	})

	t.Run("format: none", func(t *testing.T) {
		f := formatTimeAttr("none")
		require.NotNil(t, f)
		now := time.Now()

		require.Equal(t, slog.Attr{}, f(nil, slog.Time(slog.TimeKey, now)))

		// when not time key value is preserved
		a := f(nil, slog.Time("foo", now))
		require.True(t, a.Equal(slog.Time("foo", now)))
	})

	t.Run("format: format string", func(t *testing.T) {
		f := formatTimeAttr("15:04:05.0000")
		require.NotNil(t, f)

		// zero time is not changed
		a := f(nil, slog.Time(slog.TimeKey, time.Time{}))
		require.Equal(t, slog.Time(slog.TimeKey, time.Time{}), a)

		now := time.Now()
		a = f(nil, slog.Time(slog.TimeKey, now))
		require.Equal(t, now.Format("15:04:05.0000"), a.Value.String())

		// value is of wrong type for time key
		require.Panics(t, func() { f(nil, slog.Int(slog.TimeKey, 42)) })
	})
}

func Test_shortFuncName(t *testing.T) {
	require.Equal(t, "newBaseCmd.func1", shortFuncName("github.com/kagren/solana-sdk/cli/sanitizer/cmd.newBaseCmd.func1"))
	require.Equal(t, "main.main", shortFuncName("main.main.main"))
	require.Equal(t, "nodot", shortFuncName("nodot"))
}

func Test_composeAttrFmt(t *testing.T) {
	b0 := func(groups []string, a slog.Attr) slog.Attr { return slog.Int64(a.Key, a.Value.Int64()+1) }
	b1 := func(groups []string, a slog.Attr) slog.Attr { return slog.Int64(a.Key, a.Value.Int64()+2) }
	b2 := func(groups []string, a slog.Attr) slog.Attr { return slog.Int64(a.Key, a.Value.Int64()+4) }
	b3 := func(groups []string, a slog.Attr) slog.Attr { return slog.Int64(a.Key, a.Value.Int64()+8) }

	require.Nil(t, composeAttrFmt())
	require.Nil(t, composeAttrFmt(nil, nil))

	var testCases = []struct {
		fmt    func(groups []string, a slog.Attr) slog.Attr
		result int64
	}{
		{composeAttrFmt(b0), 1},
		{composeAttrFmt(nil, b1, nil), 2},
		{composeAttrFmt(b0, nil, b1), 3},
		{composeAttrFmt(b0, b1, b2, nil), 7},
		{composeAttrFmt(b0, b1, b2, b3), 15},
		// funcs are not comparable so same func passed twice is called twice
		{composeAttrFmt(b3, b3), 16},
	}
	for n, tc := range testCases {
		require.NotNil(t, tc.fmt, "case %d", n)
		a := tc.fmt(nil, slog.Int64("test", 0))
		require.EqualValues(t, tc.result, a.Value.Int64(), "case %d", n)
	}
}

func Test_dataName(t *testing.T) {
	type myData struct {
		v int
	}
	var clv customLogValuer = 4

	var testCases = []struct {
		value slog.Value
		name  string
	}{
		{value: slog.BoolValue(true), name: "Bool"},
		{value: slog.Int64Value(64), name: "Int64"},
		{value: slog.StringValue("foobar"), name: "String"},
		{value: slog.AnyValue(555), name: "Int64"},
		{value: slog.AnyValue(myData{42}), name: "logger_myData"},
		{value: slog.AnyValue(&myData{42}), name: "logger_myData"},
		{value: slog.AnyValue(customLogValuer(2)), name: "logger_customLogValuer"},
		{value: slog.AnyValue(&clv), name: "logger_customLogValuer"},
		{value: slog.AnyValue(types.Pubkey{}), name: "types_Pubkey"},
	}

	for n, tc := range testCases {
		if name := dataName(tc.value); tc.name != name {
			t.Errorf("[%d] expected %q got %q for %#v", n, tc.name, name, tc.value.Any())
		}
	}
}

func Test_formatDataAttrAsJSON(t *testing.T) {
	type SampleData struct {
		Name  string
		Value string
	}

	a := formatDataAttrAsJSON(nil, slog.Any(DataKey, &SampleData{Name: "Test", Value: "JSON"}))
	require.Equal(t, DataKey, a.Key)
	require.Equal(t, `{"Name":"Test","Value":"JSON"}`, a.Value.String())

	// other keys are not touched
	a = formatDataAttrAsJSON(nil, slog.Any("foo", &SampleData{Name: "Test"}))
	require.Equal(t, slog.KindAny, a.Value.Kind())
}

func Test_formatAttrConsole(t *testing.T) {
	a := formatAttrConsole(nil, slog.String(slog.MessageKey, "hello"))
	require.Equal(t, consoleMessageKey, a.Key)

	a = formatAttrConsole(nil, slog.String(ErrorKey, "boom"))
	require.Equal(t, consoleErrorKey, a.Key)

	a = formatAttrConsole(nil, slog.Any(slog.LevelKey, slog.LevelWarn))
	require.Equal(t, "warn", a.Value.String())

	a = formatAttrConsole(nil, slog.Any(slog.LevelKey, LevelTrace))
	require.Equal(t, "trace", a.Value.String())
}

func Test_formatAttrECS(t *testing.T) {
	sampleData := "sample data"
	a := formatAttrECS(nil, slog.Any(slog.MessageKey, sampleData))
	require.Equal(t, "message", a.Key)
	require.Equal(t, sampleData, a.Value.String())

	source := &slog.Source{
		Function: "github.com/kagren/solana-sdk/cli/sanitizer/cmd.newBaseCmd.func1",
		File:     "sample.go",
		Line:     10,
	}
	a = formatAttrECS(nil, slog.Any(slog.SourceKey, source))
	require.Equal(t, "log", a.Key)
	origin := a.Value.Group()[0]
	require.Equal(t, "origin", origin.Key)
	require.Equal(t, "function", origin.Value.Group()[0].Key)
	require.Equal(t, "newBaseCmd.func1", origin.Value.Group()[0].Value.String())

	a = formatAttrECS(nil, Signature(types.Signature{1}))
	require.Equal(t, "transaction", a.Key)
	require.Equal(t, "id", a.Value.Group()[0].Key)

	a = formatAttrECS(nil, Account(types.SystemProgramID))
	require.Equal(t, "solana", a.Key)
	require.Equal(t, "account", a.Value.Group()[0].Key)
	require.Equal(t, types.SystemProgramID.String(), a.Value.Group()[0].Value.String())

	a = formatAttrECS(nil, Slot(42))
	require.Equal(t, "solana", a.Key)
	require.EqualValues(t, 42, a.Value.Group()[0].Value.Any())

	a = formatAttrECS(nil, Data(types.Pubkey{}))
	require.Equal(t, DataKey, a.Key)
	require.Equal(t, "types_Pubkey", a.Value.Group()[0].Key)

	a = formatAttrECS(nil, slog.Int("foo", 5))
	require.Equal(t, slog.Int("foo", 5), a)
}
