package echoapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

func Test_appHTTPErrorHandler(t *testing.T) {
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)

	invalid := validate.Struct(livesession.NewSession{
		CourseID: 1, Title: "Week 1", Link: "not a url", StartTime: testutil.Now, EndTime: testutil.Now.Add(time.Hour),
	})
	require.Error(t, invalid)

	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantData     map[string]string
		wantShutdown bool
	}{
		{
			name: "validation errors", err: errors.Wrap(invalid, "scheduling"),
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"session_link": "session_link must be a valid URL"},
		},
		{
			name: "field validation error", err: core.NewFieldValidationError("progress", "must be a number"),
			wantCode: http.StatusBadRequest, wantData: map[string]string{"progress": "must be a number"},
		},
		{name: "forbidden", err: core.ErrForbidden, wantCode: http.StatusForbidden, wantData: map[string]string{"error": "permission denied"}},
		{
			name: "wrapped not found", err: errors.Wrap(livesession.ErrNotFound, "going live"),
			wantCode: http.StatusNotFound, wantData: map[string]string{"error": "live session not found"},
		},
		{
			name: "conflict", err: enrollment.ErrAlreadyEnrolled,
			wantCode: http.StatusConflict, wantData: map[string]string{"error": "student is already enrolled in this course"},
		},
		{name: "http error", err: errHttpNotFound, wantCode: http.StatusNotFound, wantData: map[string]string{"error": "not found"}},
		{
			name: "shutdown", err: core.NewShutdownError("integrity issue"),
			wantCode: http.StatusInternalServerError, wantData: map[string]string{"error": "Internal Server Error"}, wantShutdown: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shutdown bool
			handler := newAppHTTPErrorHandler(testutil.NewLogger(), translator, func() { shutdown = true })

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			assert.NotPanics(t, func() { handler(tt.err, echo.New().NewContext(req, rec)) })

			assert.Equal(t, tt.wantCode, rec.Code)
			var data map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
			assert.Equal(t, tt.wantData, data)
			assert.Equal(t, tt.wantShutdown, shutdown)
		})
	}
}
