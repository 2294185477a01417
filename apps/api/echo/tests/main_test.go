package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/certificate"
	"github.com/trezcool/academia/core/course"
	"github.com/trezcool/academia/core/curation"
	"github.com/trezcool/academia/core/dashboard"
	"github.com/trezcool/academia/core/progress"
	"github.com/trezcool/academia/core/quiz"
	"github.com/trezcool/academia/core/session"
	"github.com/trezcool/academia/core/user"
	"github.com/trezcool/academia/services/email"
	"github.com/trezcool/academia/services/lmsapi"
	"github.com/trezcool/academia/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	Server
	conf *core.Config
	lms  *testutil.LMS
	mail *emailsvc.ConsoleServiceMock
}

// setup wires a Server to a fresh fake LMS. configure may adjust the config before wiring.
func setup(t *testing.T, configure ...func(*core.Config)) *testApp {
	t.Helper()

	lms := testutil.NewLMS(t)
	conf := testutil.NewConfig(lms)
	conf.Certificates = true
	for _, fn := range configure {
		fn(conf)
	}
	logger := testutil.NullLogger{}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	client := lmsapi.New(conf.LMS, logger)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	courseSvc := course.NewService(lmsapi.NewCourseRepository(client))
	usrSvc := user.NewService(lmsapi.NewUserRepository(client), courseSvc)
	curator := lmsapi.NewCuration(client)
	curationSvc := curation.NewService(curator, curator, validate)

	sessions := session.NewController(
		courseSvc,
		progress.NewSynchronizer(lmsapi.NewProgressStore(client), logger),
		logger,
		conf.Sessions.CourseDuration,
	)
	if conf.Certificates {
		sessions.OnCourseComplete(certificate.NewIssuer(usrSvc, mailSvc, conf.SecretKey, conf.AppName, logger).OnCourseComplete)
	}
	quizzes := quiz.NewController(lmsapi.NewResultStore(client), logger, conf.Sessions.QuizDuration)

	srv, err := NewServer(
		&Options{
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
		&Deps{
			UserSvc:      usrSvc,
			CourseSvc:    courseSvc,
			Sessions:     sessions,
			Quizzes:      quizzes,
			DashboardSvc: dashboard.NewService(usrSvc, quizzes, curationSvc),
			CurationSvc:  curationSvc,
		},
	)
	if err != nil {
		t.Fatalf("NewServer(): %v", err)
	}
	return &testApp{Server: srv, conf: conf, lms: lms, mail: mailSvc}
}

// do serves one request and returns the recorder.
func (app *testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.ServeHTTP(rec, req)
	return rec
}

// student creates a student and returns their ID and token.
func (app *testApp) student(t *testing.T, name, email string) (string, string) {
	t.Helper()
	id := testutil.CreateStudent(t, app.lms, name, email)
	return id, getToken(t, app.conf, user.User{ID: id, Name: name, Email: email, Role: user.RoleStudent})
}

func (app *testApp) admin(t *testing.T, name, email string) (string, string) {
	t.Helper()
	id := testutil.CreateAdmin(t, app.lms, name, email)
	return id, getToken(t, app.conf, user.User{ID: id, Name: name, Email: email, Role: user.RoleAdmin})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	_, ok1 := j1.([]interface{})
	_, ok2 := j2.([]interface{})
	if ok1 && ok2 {
		return assert.ElementsMatch(t, j1, j2), nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
