package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsSubmittedJobs(t *testing.T) {
	p := NewPool(2)

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		ok := p.Submit(func() error {
			defer wg.Done()
			ran.Add(1)
			return nil
		})
		if !ok {
			t.Fatalf("Submit refused on live pool")
		}
	}
	wg.Wait()
	p.Stop()

	if got := ran.Load(); got != 10 {
		t.Fatalf("jobs run: got %d, want 10", got)
	}
}

func TestPoolDoReturnsJobError(t *testing.T) {
	p := NewPool(1)
	defer p.Stop()

	want := errors.New("boom")
	if got := p.Do(func() error { return want }); !errors.Is(got, want) {
		t.Fatalf("Do error: got %v, want %v", got, want)
	}
	if got := p.Do(func() error { return nil }); got != nil {
		t.Fatalf("Do on success: got %v, want nil", got)
	}
}

func TestPoolRejectsAfterStop(t *testing.T) {
	p := NewPool(1)
	p.Stop()

	if ok := p.Submit(func() error { return nil }); ok {
		t.Fatalf("Submit accepted after Stop")
	}
	if err := p.Do(func() error { return nil }); !errors.Is(err, ErrStopped) {
		t.Fatalf("Do after Stop: got %v, want %v", err, ErrStopped)
	}
}

func TestPoolStopTimeoutReportsStuckJobs(t *testing.T) {
	p := NewPool(1)

	release := make(chan struct{})
	p.Submit(func() error {
		<-release
		return nil
	})

	if p.StopTimeout(20 * time.Millisecond) {
		t.Fatalf("StopTimeout reported drained while a job was blocked")
	}
	close(release)
}

func TestPoolStopTimeoutDrains(t *testing.T) {
	p := NewPool(2)
	p.Submit(func() error { return nil })

	if !p.StopTimeout(time.Second) {
		t.Fatalf("StopTimeout did not drain an idle pool")
	}
}
