package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/entmirror/errors"
)

// withTheme switches the console theme for the duration of a test.
func withTheme(t *testing.T, theme string) {
	t.Helper()
	prev := currentTheme
	SetTheme(theme)
	t.Cleanup(func() { currentTheme = prev })
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{"console default", false, 0, zapcore.WarnLevel},
		{"console -v", false, 1, zapcore.InfoLevel},
		{"json -vv", true, 2, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Logger
			t.Cleanup(func() {
				Logger = prev
				JSONOutput = false
			})

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))

	assert.False(t, ShouldLogTrace(VerbosityDebug))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv)", LevelName(5))
	assert.Equal(t, "Unknown", LevelName(-1))
}

func TestCleanup(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	Logger = nil
	assert.NotPanics(t, Cleanup)

	Logger = zap.NewNop().Sugar()
	assert.NotPanics(t, Cleanup)
	assert.NotNil(t, Logger, "Cleanup should not nil out the logger")
}

func TestLoggingFunctionsWithNilLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })
	Logger = nil

	assert.NotPanics(t, func() {
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Warnw("test", FieldEntity, "Tenant")
		Errorw("test", FieldError, "boom")
		Debugw("test", FieldCount, 3)
	})
}

func TestSetTheme(t *testing.T) {
	withTheme(t, ThemeEverforest)

	SetTheme("solarized")
	assert.Equal(t, ThemeEverforest, currentTheme, "unknown theme is ignored")

	SetTheme(ThemeGruvbox)
	assert.Equal(t, ThemeGruvbox, currentTheme)

	SetTheme(ThemePlain)
	assert.Equal(t, "x", paint("\x1b[1m", "x"))
}

func TestExtractFieldValues(t *testing.T) {
	withTheme(t, ThemePlain)

	tests := []struct {
		name   string
		fields []zapcore.Field
		want   string
	}{
		{
			name:   "entity and field join",
			fields: []zapcore.Field{zap.String(FieldFile, "example/entity/facility_entity.go"), zap.String(FieldField, "schedule"), zap.String(FieldEntity, "Facility")},
			want:   "Facility.schedule example/entity/facility_entity.go",
		},
		{
			name:   "count and duration",
			fields: []zapcore.Field{zap.Int(FieldCount, 9), zap.Int64(FieldDurationMS, 42)},
			want:   "(9) 42ms",
		},
		{
			name:   "kind and error",
			fields: []zapcore.Field{zap.String(FieldKind, "unresolved_type"), zap.Error(errors.New("boom"))},
			want:   "[unresolved_type] boom",
		},
		{
			name:   "unknown keys are dropped",
			fields: []zapcore.Field{zap.String("other", "x"), zap.Bool("flag", true)},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractFieldValues(tt.fields))
		})
	}
}

func TestMinimalEncoderEncodeEntry(t *testing.T) {
	withTheme(t, ThemePlain)

	enc := newMinimalEncoder()
	ent := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2026, 3, 1, 13, 4, 35, 0, time.UTC),
		LoggerName: "typegen",
		Message:    "Unresolved property type",
	}

	buf, err := enc.EncodeEntry(ent, []zapcore.Field{
		zap.String(FieldEntity, "Facility"),
		zap.String(FieldField, "schedule"),
	})
	require.NoError(t, err)
	defer buf.Free()

	assert.Equal(t, "13:04:35  WARN  typegen  Unresolved property type  Facility.schedule\n", buf.String())
}

func TestMinimalEncoderHidesInfoLevel(t *testing.T) {
	withTheme(t, ThemePlain)

	buf, err := newMinimalEncoder().Clone().EncodeEntry(zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Message: "Loaded sources",
	}, nil)
	require.NoError(t, err)
	defer buf.Free()

	line := buf.String()
	assert.False(t, strings.Contains(line, "INFO"))
	assert.Equal(t, "09:00:00  Loaded sources\n", line)
}

func TestComponentLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })
	Logger = zap.NewNop().Sugar()

	l := ComponentLogger("watch")
	require.NotNil(t, l)
	assert.Equal(t, "watch", l.Desugar().Name())

	child := ChildLogger(l, FieldEntity, "Tenant")
	assert.NotNil(t, child)
}

func BenchmarkMinimalEncoder(b *testing.B) {
	enc := newMinimalEncoder()
	ent := zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), LoggerName: "typegen", Message: "Unresolved property type"}
	fields := []zapcore.Field{zap.String(FieldEntity, "Facility"), zap.String(FieldField, "schedule")}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ := enc.EncodeEntry(ent, fields)
		buf.Free()
	}
}
