// Package telemetry reports collaborator failures to the log and, when a DSN
// is configured, to Sentry. It also hosts the optional runtime stats viewer.
package telemetry

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
)

var (
	enabled atomic.Bool
	logger  atomic.Pointer[log.Logger]
)

// Init configures Sentry. An empty dsn leaves reporting log-only.
func Init(dsn, release string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	}); err != nil {
		return fmt.Errorf("telemetry: sentry init: %w", err)
	}
	enabled.Store(true)
	return nil
}

// Enabled reports whether Sentry reporting is active.
func Enabled() bool {
	return enabled.Load()
}

// Flush waits up to timeout for queued Sentry events.
func Flush(timeout time.Duration) {
	if enabled.Load() {
		sentry.Flush(timeout)
	}
}

// SetLogger sets the logger Report writes to.
func SetLogger(l *log.Logger) {
	logger.Store(l)
}

func currentLogger() *log.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return log.Default()
}

// Fields builds ordered report context from alternating keys and values.
// A trailing key without a value is dropped.
func Fields(kv ...any) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return m
}

// FieldsString formats fields as [k=v k=v].
func FieldsString(fields *orderedmap.OrderedMap[string, any]) string {
	if fields == nil {
		return "[]"
	}
	s := "["
	count := fields.Len()
	for _, key := range fields.Keys() {
		v, _ := fields.Get(key)
		s += fmt.Sprintf("%s=%v", key, v)
		count--
		if count > 0 {
			s += " "
		}
	}
	return s + "]"
}

// Report logs err with its context and forwards it to Sentry when enabled.
// It never fails; callers use it at boundaries where errors are swallowed.
func Report(err error, fields *orderedmap.OrderedMap[string, any]) {
	if err == nil {
		return
	}
	if fields == nil {
		fields = orderedmap.NewOrderedMap[string, any]()
	}

	currentLogger().Warn("collaborator failure", "err", err, "context", FieldsString(fields))

	if !enabled.Load() {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for _, key := range fields.Keys() {
			v, _ := fields.Get(key)
			scope.SetTag(key, fmt.Sprint(v))
		}
	})
	hub.CaptureException(err)
}

// Recover reports a panic in a background goroutine. Use as defer telemetry.Recover("name").
func Recover(component string) {
	r := recover()
	if r == nil {
		return
	}
	currentLogger().Error("panic recovered", "component", component, "panic", r)
	if !enabled.Load() {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", component)
	})
	hub.Recover(r)
	hub.Flush(5 * time.Second)
}
