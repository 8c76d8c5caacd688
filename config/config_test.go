package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()
	require.NoError(t, opts.Validate())
	assert.Equal(t, MaxIter, opts.MaxIter)
	assert.True(t, opts.Accelerated)
	assert.Equal(t, logrus.InfoLevel, opts.Level())
}

func TestValidate(t *testing.T) {
	cases := []func(*Options){
		func(o *Options) { o.MaxIter = 0 },
		func(o *Options) { o.TolP = 0 },
		func(o *Options) { o.TolV = -1 },
		func(o *Options) { o.Alpha = 1.5 },
		func(o *Options) { o.LogLevel = "loud" },
	}
	for i, mutate := range cases {
		opts := Default()
		mutate(&opts)
		err := opts.Validate()
		if !errors.Is(err, ErrOptions) {
			t.Errorf("第 %d 组参数应校验失败, 实际 %v", i, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.toml")
	content := "max_iter = 42\nalpha = 0.5\naccelerated = false\nlog_level = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, opts.MaxIter)
	assert.Equal(t, 0.5, opts.Alpha)
	assert.False(t, opts.Accelerated)
	assert.Equal(t, TolP, opts.TolP)
	assert.Equal(t, logrus.DebugLevel, opts.Level())
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: 2\n"), 0o600))
	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrOptions))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PIPEFLOW_MAX_ITER", "7")
	opts, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, opts.MaxIter)
}
