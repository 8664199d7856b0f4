package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/echo"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

func Test_home(t *testing.T) {
	e := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	e.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func Test_userApi(t *testing.T) {
	e := setup(t)
	admin := testutil.CreateUser(t, e.repos.Users, "Ada", "ada@academy.test", core.RoleAdminOwner)
	student := testutil.CreateUser(t, e.repos.Users, "Sam", "sam@academy.test", core.RoleStudent)
	adminToken := getToken(t, e.conf, admin)

	created := user.User{ID: 3, Name: "Tom", Email: "tom@academy.test", Role: core.RoleTeacher, CreatedAt: testutil.Now}

	tests := []httpTest{
		{name: "auth required", path: "/v1/users/me", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "invalid token", path: "/v1/users/me", token: "nope",
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{name: "me", path: "/v1/users/me", token: getToken(t, e.conf, student), wantCode: http.StatusOK, wantData: marshalObj(t, student)},
		{
			name: "create needs admin", method: http.MethodPost, path: "/v1/users", token: getToken(t, e.conf, student),
			body:     []byte(`{"name": "Tom", "role": "teacher:"}`),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "invalid role", method: http.MethodPost, path: "/v1/users", token: adminToken,
			body:     []byte(`{"name": "Tom", "role": "janitor"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"role": "invalid role"}),
		},
		{
			name: "create", method: http.MethodPost, path: "/v1/users", token: adminToken,
			body:     []byte(`{"name": "Tom", "email": "TOM@academy.test", "role": "teacher:"}`),
			wantCode: http.StatusCreated, wantData: marshalObj(t, created),
		},
		{name: "retrieve", path: "/v1/users/3", token: adminToken, wantCode: http.StatusOK, wantData: marshalObj(t, created)},
		{
			name: "unknown user", path: "/v1/users/404", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "user not found"}),
		},
	}
	e.run(t, tests)
}

func Test_courseApi(t *testing.T) {
	e := setup(t)
	teacher := testutil.CreateUser(t, e.repos.Users, "Tom", "tom@academy.test", core.RoleTeacher)
	student := testutil.CreateUser(t, e.repos.Users, "Sam", "sam@academy.test", core.RoleStudent)

	created := course.Course{ID: 1, Title: "Go", NumWeeks: testutil.IntPtr(6), CreatedAt: testutil.Now}

	tests := []httpTest{
		{
			name: "students may not create", method: http.MethodPost, path: "/v1/courses", token: getToken(t, e.conf, student),
			body:     []byte(`{"title": "Go"}`),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "title required", method: http.MethodPost, path: "/v1/courses", token: getToken(t, e.conf, teacher),
			body:     []byte(`{"title": " "}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "create", method: http.MethodPost, path: "/v1/courses", token: getToken(t, e.conf, teacher),
			body:     []byte(`{"title": "Go", "num_weeks": 6}`),
			wantCode: http.StatusCreated, wantData: marshalObj(t, created),
		},
		{name: "retrieve", path: "/v1/courses/1", token: getToken(t, e.conf, student), wantCode: http.StatusOK, wantData: marshalObj(t, created)},
		{
			name: "unknown course", path: "/v1/courses/404", token: getToken(t, e.conf, student),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "course not found"}),
		},
		{
			name: "enroll", method: http.MethodPost, path: "/v1/courses/1/enrollment",
			token: getToken(t, e.conf, student), wantCode: http.StatusCreated,
			wantData: marshalObj(t, enrollment.Enrollment{ID: 1, CourseID: 1, StudentID: student.ID, EnrolledAt: testutil.Now}),
		},
		{name: "retrieve once enrolled", path: "/v1/courses/1", token: getToken(t, e.conf, student), wantCode: http.StatusOK, wantData: marshalObj(t, created)},
	}
	e.run(t, tests)
}

func Test_refreshToken(t *testing.T) {
	e := setup(t)
	student := testutil.CreateUser(t, e.repos.Users, "Sam", "sam@academy.test", core.RoleStudent)

	req, rec := newAuthRequest(http.MethodPost, "/v1/token-refresh", getToken(t, e.conf, student))
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp echoapi.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims := new(echoapi.Claims)
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(e.conf.SecretKey), nil
	})
	require.NoError(t, err)
	actor, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, student.Actor(), actor)
}
