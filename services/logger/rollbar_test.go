package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

func Test_newRollbarEntry(t *testing.T) {
	errBoom := errors.New("boom")
	teacher := core.Actor{ID: 12, Role: core.RoleTeacher}

	tests := []struct {
		name      string
		args      []interface{}
		wantItems []interface{}
		wantActor *core.Actor
	}{
		{name: "message only", wantItems: []interface{}{"msg"}},
		{name: "error", args: []interface{}{errBoom}, wantItems: []interface{}{"msg", errBoom}},
		{
			name:      "maps are merged",
			args:      []interface{}{errBoom, map[string]interface{}{"path": "/v1"}, map[string]interface{}{"request_id": "r1"}},
			wantItems: []interface{}{"msg", errBoom, map[string]interface{}{"path": "/v1", "request_id": "r1"}},
		},
		{
			name:      "first actor wins",
			args:      []interface{}{teacher, core.Actor{ID: 1, Role: core.RoleAdmin}},
			wantItems: []interface{}{"msg", map[string]interface{}{"actor_id": 12, "actor_role": core.RoleTeacher}},
			wantActor: &teacher,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newRollbarEntry("msg", tt.args)
			assert.Equal(t, tt.wantItems, e.items)
			assert.Equal(t, tt.wantActor, e.actor)
		})
	}
}

func Test_personUsername(t *testing.T) {
	assert.Equal(t, "teacher:#12", personUsername(core.Actor{ID: 12, Role: core.RoleTeacher}))
	assert.Equal(t, "admin:owner#1", personUsername(core.Actor{ID: 1, Role: core.RoleAdminOwner}))
}

func TestRollbarLogger_mirrorsToStd(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "API : ", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	logger.Error("sending email", errors.New("status 401"))
	assert.Equal(t, "API : sending email\nAPI : status 401\n", buf.String())
}
