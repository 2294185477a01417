package testutil

import (
	"io/ioutil"
	"log"
	"testing"
	"time"

	"github.com/trezcool/academia/core"
)

// Fixture passwords satisfy the registration policy.
const (
	StudentPassword = "Lear9ing!Rocks"
	AdminPassword   = "Adm1n!Strong"
)

// NewConfig returns a test configuration pointing at lms.
func NewConfig(lms *LMS) *core.Config {
	conf := core.NewTestConfig()
	conf.LMS.BaseURL = lms.URL()
	conf.LMS.CurationURL = lms.URL()
	conf.LMS.Timeout = 5 * time.Second
	return conf
}

// NullLogger discards everything.
type NullLogger struct{}

var _ core.Logger = NullLogger{}

func (NullLogger) Debug(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{})  {}
func (NullLogger) Warn(string, ...interface{})  {}
func (NullLogger) Error(string, ...interface{}) {}
func (NullLogger) Fatal(string, ...interface{}) {}

// StdLogger is a silent *log.Logger.
func StdLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

// CreateStudent adds a student to lms and returns their ID.
func CreateStudent(t *testing.T, lms *LMS, name, email string) string {
	t.Helper()
	return lms.AddUser(name, email, StudentPassword, "student")
}

// CreateAdmin adds an admin to lms and returns their ID.
func CreateAdmin(t *testing.T, lms *LMS, name, email string) string {
	t.Helper()
	return lms.AddUser(name, email, AdminPassword, "admin")
}
