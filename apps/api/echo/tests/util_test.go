package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/echo"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/services/email"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type env struct {
	conf    *core.Config
	app     *echoapi.Server
	repos   *storage.Repositories
	clock   *core.FixedClock
	mailSvc *emailsvc.ConsoleService
}

func setup(t *testing.T) *env {
	conf := testutil.NewConfig()
	logger := testutil.NewLogger()
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	clock := testutil.NewClock()
	repos := storage.OpenInMem()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	app := echoapi.NewServer(echoapi.ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		CourseSvc:       course.NewService(repos.Courses, validate, clock),
		UserSvc:         user.NewService(repos.Users, validate, clock),
		EnrollmentSvc:   enrollment.NewService(repos.Enrollments, repos.Courses, clock),
		SessionSvc:      livesession.NewService(repos.LiveSessions, repos.Courses, validate, clock),
		NotificationSvc: notification.NewService(repos.Notifications, validate, clock),
		Coordinator: livesession.NewCoordinator(livesession.CoordinatorOpts{
			Sessions:      repos.LiveSessions,
			Courses:       repos.Courses,
			Enrollments:   repos.Enrollments,
			Notifications: repos.Notifications,
			Users:         repos.Users,
			MailSvc:       mailSvc,
			Logger:        logger,
			Clock:         clock,
		}),
	})
	return &env{conf: conf, app: app, repos: repos, clock: clock, mailSvc: mailSvc}
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

func (e *env) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			e.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
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

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	token, err := echoapi.GenerateToken(conf, usr.Actor())
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	if len(b1) == 0 && len(b2) == 0 {
		return true, nil
	}
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
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
