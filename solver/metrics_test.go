package solver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pipeflow/component"
)

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		"converged":     nil,
		"not_converged": fmt.Errorf("run: %w", ErrNotConverged),
		"singular":      errorf(ErrSingular, "x"),
		"config":        fmt.Errorf("%w: bad", component.ErrConfig),
		"error":         errors.New("other"),
	}
	for want, err := range cases {
		assert.Equal(t, want, Outcome(err))
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(options())
	s.Metrics = NewMetrics(reg)

	_, err := s.Run(newSupply(t, 1))
	require.NoError(t, err)
	_, err = s.Run(newSupply(t, 2))
	require.NoError(t, err)
	_, err = s.Run(junctions(t, 1))
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.Metrics.Solves.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Solves.WithLabelValues("config")))
	assert.Less(t, testutil.ToFloat64(s.Metrics.Residual), 1e-5)
	assert.Equal(t, 4, testutil.CollectAndCount(reg))
}
