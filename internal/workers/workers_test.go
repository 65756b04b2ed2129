// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
	err      error
}

func (m *mockWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return nil
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorkers(w1, w2, w3).Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.runCount.Load() == 1 && w2.runCount.Load() == 1 && w3.runCount.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWorkers_Run_Empty(t *testing.T) {
	require.NoError(t, NewWorkers().Run(context.Background()))
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not block or panic when workers field is nil
	require.NoError(t, ws.Run(context.Background()))
}

func TestWorkers_Run_FailureStopsOthers(t *testing.T) {
	failure := errors.New("redis unavailable")
	healthy := &mockWorker{}

	ws := NewWorkers(healthy)
	ws.Add(&mockWorker{err: failure})

	err := ws.Run(context.Background())

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, int32(1), healthy.runCount.Load())
}
