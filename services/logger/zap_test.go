package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

func TestZapLogger(t *testing.T) {
	zcore, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(zcore))

	logger.Error("sending email",
		errors.New("boom"),
		core.Actor{ID: 7, Role: core.RoleTeacher},
		map[string]interface{}{"session_id": 3},
		"extra",
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "sending email", entry.Message)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.EqualValues(t, 7, ctx["actor_id"])
	assert.Equal(t, core.RoleTeacher, ctx["actor_role"])
	assert.EqualValues(t, 3, ctx["session_id"])
	assert.Equal(t, "extra", ctx["arg3"])
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    interface{}
		wantErr bool
	}{
		{backend: "", want: &ZapLogger{}},
		{backend: BackendZap, want: &ZapLogger{}},
		{backend: BackendRollbar, want: &RollbarLogger{}},
		{backend: "syslog", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			conf := &core.Config{Env: "TEST", AppName: "Online Academy", Debug: true, LogBackend: tt.backend}
			logger, err := New(conf, "TEST")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, logger)
		})
	}
}
