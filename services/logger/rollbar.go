package logsvc

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/academia/core"
)

// RollbarLogger reports to Rollbar and writes one line per entry to std:
//
//	LEVEL msg key=value ... error=...
//
// Debug entries are dropped unless the app runs in debug mode.
type RollbarLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Address)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
	return &RollbarLogger{std: std, debug: conf.Debug}
}

// Close waits for queued items to be sent.
func (l *RollbarLogger) Close() {
	rollbar.Close()
}

// entry splits args into what Rollbar gets (msg, error, extras) and the line written to std.
// Only the first core.Person is attached to the report.
func (l *RollbarLogger) entry(level, msg string, args []interface{}) ([]interface{}, string) {
	var person *core.Person
	var errs []string
	fields := make(map[string]interface{})
	report := []interface{}{msg}
	for i, arg := range args {
		switch a := arg.(type) {
		case core.Person:
			if person == nil {
				p := a
				person = &p
			}
		case error:
			errs = append(errs, fmt.Sprintf("%v", a))
			report = append(report, a)
		case map[string]interface{}:
			for k, v := range a {
				fields[k] = v
			}
			report = append(report, a)
		default:
			fields[fmt.Sprintf("arg%d", i)] = a
		}
	}

	if person != nil {
		rollbar.SetPerson(person.ID, person.Username, person.Email)
		fields["user"] = person.ID
	} else {
		rollbar.ClearPerson()
	}

	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	for _, e := range errs {
		fmt.Fprintf(&b, " error=%q", e)
	}
	return report, b.String()
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	report, line := l.entry("DEBUG", msg, args)
	rollbar.Debug(report...)
	l.std.Println(line)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	report, line := l.entry("INFO", msg, args)
	rollbar.Info(report...)
	l.std.Println(line)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	report, line := l.entry("WARN", msg, args)
	rollbar.Warning(report...)
	l.std.Println(line)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	report, line := l.entry("ERROR", msg, args)
	rollbar.Error(report...)
	l.std.Println(line)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	report, line := l.entry("FATAL", msg, args)
	rollbar.Critical(report...)
	rollbar.Close()
	l.std.Fatal(line)
}
