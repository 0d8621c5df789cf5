package logger

import (
	"go.uber.org/zap"
)

// Standard field names for structured logging.
const (
	FieldComponent = "component"

	// Sources
	FieldFile    = "file"
	FieldLine    = "line"
	FieldPattern = "pattern"
	FieldPackage = "package"

	// Entities
	FieldEntity = "entity"
	FieldField  = "field"
	FieldBase   = "base"
	FieldKind   = "kind"

	// Output
	FieldOutput = "output"

	// Counts and timing
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	entityLogger := logger.ChildLogger(base, logger.FieldEntity, e.Name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
