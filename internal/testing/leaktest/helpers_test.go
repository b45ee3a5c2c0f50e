package leaktest

import (
	"sync"
	"testing"
	"time"
)

func TestCheckerPassesWhenGoroutinesFinish(t *testing.T) {
	checker := NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(5 * time.Millisecond)
		}()
	}
	wg.Wait()

	checker.Check(0)
}

func TestCheckerTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	checker.Check(1)
}

func TestSettleTimesOut(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	go func() { <-done }()

	_, ok := settle(0, 20*time.Millisecond)
	if ok {
		t.Fatal("expected settle to time out with a running goroutine")
	}
}

func TestVerify(t *testing.T) {
	Verify(t)

	stop := make(chan struct{})
	go func() { <-stop }()
	close(stop)
}
