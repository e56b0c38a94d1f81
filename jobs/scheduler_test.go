package jobs

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/go-faster/errors"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
)

func TestNewScheduler_RegistersEntries(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	sched, err := NewScheduler(zap.NewNop(),
		Job{Name: "a", Spec: "@every 1m", Run: noop},
		Job{Name: "b", Spec: "@hourly", Run: noop},
	)
	require.NoError(t, err)
	assert.Len(t, sched.Entries(), 2)

	sched.Start()
	<-sched.Stop().Done()
}

func TestNewScheduler_Errors(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }

	_, err := NewScheduler(zap.NewNop(), Job{Name: "bad", Spec: "whenever", Run: noop})
	assert.Error(t, err)

	_, err = NewScheduler(zap.NewNop(),
		Job{Name: "twice", Spec: "@hourly", Run: noop},
		Job{Name: "twice", Spec: "@daily", Run: noop},
	)
	assert.Error(t, err)
}

func TestRunNow(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	boom := errors.New("boom")
	sched, err := NewScheduler(zap.NewNop(),
		Job{Name: "test-ok", Spec: "@hourly", Run: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		}},
		Job{Name: "test-fail", Spec: "@hourly", Run: func(ctx context.Context) error {
			return boom
		}},
	)
	require.NoError(t, err)

	require.NoError(t, sched.RunNow(context.Background(), "test-ok"))
	assert.Equal(t, int32(1), calls.Load())
	assert.InDelta(t, 1, ptestutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("test-ok", "ok")), 0)

	assert.ErrorIs(t, sched.RunNow(context.Background(), "test-fail"), boom)
	assert.InDelta(t, 1, ptestutil.ToFloat64(metrics.JobRunsTotal.WithLabelValues("test-fail", "error")), 0)

	assert.Error(t, sched.RunNow(context.Background(), "missing"))
}
