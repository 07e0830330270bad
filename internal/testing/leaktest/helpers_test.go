package leaktest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for k := 0; k < 4; k++ {
			wg.Add(1)
			go func() { defer wg.Done() }()
		}
		wg.Wait()
	})
}

func TestGoroutineChecker_WaitsForExit(t *testing.T) {
	checker := NewGoroutineChecker(t)

	release := make(chan struct{})
	go func() { <-release }()
	assert.GreaterOrEqual(t, checker.Leaked(), 1)

	close(release)
	checker.Check(0)
}

func TestGoroutineChecker_Tolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	release := make(chan struct{})
	defer close(release)
	go func() { <-release }()

	checker.Check(1)
}

func TestSettle_TimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	go func() { <-release }()

	assert.False(t, settle(0, 3*pollInterval))
}
