package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Theme names accepted by SetTheme.
const (
	ThemeEverforest = "everforest"
	ThemeGruvbox    = "gruvbox"
	ThemePlain      = "plain"
)

type palette struct {
	time      string
	component string
	fg        string
	name      string // entity and field names
	path      string
	number    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

var palettes = map[string]palette{
	ThemeEverforest: {
		time:      "\x1b[38;5;107m",
		component: "\x1b[38;5;208m",
		fg:        "\x1b[38;5;223m",
		name:      "\x1b[38;5;108m",
		path:      "\x1b[38;5;65m",
		number:    "\x1b[38;5;108m",
		warn:      "\x1b[38;5;179m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;52m",
	},
	ThemeGruvbox: {
		time:      "\x1b[38;5;108m",
		component: "\x1b[38;5;214m",
		fg:        "\x1b[38;5;223m",
		name:      "\x1b[38;5;109m",
		path:      "\x1b[38;5;142m",
		number:    "\x1b[38;5;175m",
		warn:      "\x1b[38;5;214m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;88m",
	},
}

var currentTheme = ThemeEverforest

var bufferPool = buffer.NewPool()

// SetTheme configures the color scheme for console output. Unknown names are
// ignored; ThemePlain disables ANSI colors.
func SetTheme(theme string) {
	if _, ok := palettes[theme]; ok || theme == ThemePlain {
		currentTheme = theme
	}
}

// paint wraps s in the given color unless the plain theme is active.
func paint(color, s string) string {
	if currentTheme == ThemePlain || color == "" {
		return s
	}
	return color + s + colorReset
}

func colors() palette {
	return palettes[currentTheme] // zero palette for ThemePlain
}

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  WARN  typegen  Unresolved property type  Facility.schedule  example/entity/facility_entity.go"
type minimalEncoder struct {
	zapcore.Encoder // base encoder handles With() field accumulation
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := bufferPool.Get()

	final.AppendString(paint(c.time, ent.Time.Format("15:04:05")))

	// Level: only shown above INFO
	if lvl := levelString(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(paint(c.component, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(paint(c.fg, ent.Message))

	if values := extractFieldValues(fields); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

func levelString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.DebugLevel, zapcore.InfoLevel:
		return ""
	case zapcore.WarnLevel:
		return paint(colorBold+c.warnBg+c.warn, "WARN")
	default:
		return paint(colorBold+c.errBg+c.err, level.CapitalString())
	}
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		if field.Integer == 1 {
			return "true"
		}
		return "false"
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues renders the known fields as bare values.
// Input: {"entity": "Facility", "field": "tenant", "file": "x.go", "count": 3}
// Output: "Facility.tenant x.go (3)"
func extractFieldValues(fields []zapcore.Field) string {
	c := colors()
	var entity, field string
	var values []string

	for _, f := range fields {
		val := getFieldValue(f)
		if val == "" {
			continue
		}
		switch f.Key {
		case FieldEntity:
			entity = val
		case FieldField:
			field = val
		case FieldKind:
			values = append(values, paint(c.fg, "["+val+"]"))
		case FieldFile, FieldOutput, FieldPattern:
			values = append(values, paint(c.path, val))
		case FieldCount:
			values = append(values, paint(c.fg, "(")+paint(c.number, val)+paint(c.fg, ")"))
		case FieldDurationMS:
			values = append(values, paint(c.number, val)+"ms")
		case FieldError:
			values = append(values, paint(c.err, val))
		}
	}

	if name := joinName(entity, field); name != "" {
		values = append([]string{paint(c.name, name)}, values...)
	}
	return strings.Join(values, " ")
}

func joinName(entity, field string) string {
	switch {
	case entity != "" && field != "":
		return entity + "." + field
	case entity != "":
		return entity
	default:
		return field
	}
}
