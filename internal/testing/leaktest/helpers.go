// Package leaktest checks that workers and schedulers release their goroutines.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	maxStackDump  = 1 << 16
)

// GoroutineChecker compares the goroutine count at creation with the count at Check
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check waits for goroutines started since creation to exit. It fails the
// test when more than tolerance remain after the settle timeout, and logs
// the remaining stacks.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.before + tolerance
	if settle(limit, settleTimeout) {
		return
	}

	after := runtime.NumGoroutine()
	buf := make([]byte, maxStackDump)
	n := runtime.Stack(buf, true)
	g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d\n%s", g.before, after, tolerance, buf[:n])
}

// Leaked reports how many goroutines exist beyond the recorded baseline
func (g *GoroutineChecker) Leaked() int {
	return runtime.NumGoroutine() - g.before
}

// CheckNoGoroutineLeak runs fn and requires every goroutine it started to exit
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle polls until at most limit goroutines run or timeout elapses
func settle(limit int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= limit {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}
