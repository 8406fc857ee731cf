package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsLastCallOnly(t *testing.T) {
	var d Debouncer
	var calls atomic.Int32
	var last atomic.Int32
	done := make(chan struct{}, 1)

	for i := 1; i <= 5; i++ {
		i := i
		d.Debounce(20*time.Millisecond, func() {
			calls.Add(1)
			last.Store(int32(i))
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	var d Debouncer
	var ran atomic.Bool
	d.Debounce(20*time.Millisecond, func() { ran.Store(true) })

	assert.True(t, d.Stop())
	assert.False(t, d.Stop())
	time.Sleep(60 * time.Millisecond)
	assert.False(t, ran.Load())
}
