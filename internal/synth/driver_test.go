package synth

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInvoker struct {
	mu    sync.Mutex
	calls int
	fail  map[int]bool
}

func (s *stubInvoker) Invoke(job Job) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.fail != nil && s.fail[job.Index] {
		return nil, fmt.Errorf("stub failure for chunk %d", job.Index)
	}
	return []byte(job.Text), nil
}

func TestRunPreservesIndexOrder(t *testing.T) {
	jobs := []Job{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b"},
		{Index: 2, Text: "c"},
	}
	results, err := Run(jobs, 2, &stubInvoker{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", string(results[0]))
	assert.Equal(t, "b", string(results[1]))
	assert.Equal(t, "c", string(results[2]))
}

func TestRunFailsOnChunkError(t *testing.T) {
	jobs := []Job{
		{Index: 0, Text: "a"},
		{Index: 1, Text: "b"},
	}
	invoker := &stubInvoker{fail: map[int]bool{1: true}}
	_, err := Run(jobs, 2, invoker)
	require.Error(t, err)
}

func TestRunEmptyJobsReturnsNoResults(t *testing.T) {
	results, err := Run(nil, 4, &stubInvoker{})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestRunCapsWorkersAtJobCount(t *testing.T) {
	jobs := []Job{{Index: 0, Text: "solo"}}
	invoker := &stubInvoker{}
	_, err := Run(jobs, 8, invoker)
	require.NoError(t, err)
	assert.Equal(t, 1, invoker.calls)
}
