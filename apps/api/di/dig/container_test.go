package dig_container

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/Ala-Eddine-Mezdoud/online-academy-sub000/apps/api/echo"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("TEST_DATABASE_ENGINE", core.EngineInMem)
	t.Setenv("TEST_LOG_BACKEND", "zap")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir())) // no config/.env.test
	t.Cleanup(func() { _ = os.Chdir(wd) })

	err = New().Invoke(func(conf *core.Config, repos *storage.Repositories, server *echoapi.Server) {
		assert.True(t, conf.TestMode)
		assert.Equal(t, core.EngineInMem, repos.Engine)
		assert.NotNil(t, server)
	})
	require.NoError(t, err)
}
