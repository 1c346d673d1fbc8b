package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
)

// countingQuotas counts GetQuotas calls across goroutines.
type countingQuotas struct {
	calls atomic.Int32
}

func (c *countingQuotas) GetQuotas(_ context.Context) ([]ebay.QuotaState, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&countingQuotas{}, WithLogger(quietLogger()))

	sched, err := NewScheduler(eng, 15*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
	assert.NotZero(t, sched.quotaEntryID)
	assert.True(t, sched.NextQuotaSync().IsZero(), "next run is unknown before Start")
}

func TestNewScheduler_InvalidInterval(t *testing.T) {
	t.Parallel()

	eng := NewEngine(nil, WithLogger(quietLogger()))

	_, err := NewScheduler(eng, -time.Minute, quietLogger())
	require.Error(t, err)
}

func TestScheduler_StartRunsInitialSync(t *testing.T) {
	t.Parallel()

	src := &countingQuotas{}
	eng := NewEngine(src, WithLogger(quietLogger()))

	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestScheduler_NextQuotaSync(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&countingQuotas{}, WithLogger(quietLogger()))

	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		next := sched.NextQuotaSync()
		return !next.IsZero() && next.After(time.Now())
	}, time.Second, 10*time.Millisecond)
}
