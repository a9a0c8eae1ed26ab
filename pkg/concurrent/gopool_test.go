package concurrent

import (
	"sync"
	"testing"
	"time"
)

func TestPoolRunsScheduledTasks(t *testing.T) {
	p := NewPool(4, 8)
	defer p.Close()

	var (
		mu    sync.Mutex
		count int
		wg    sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		p.Schedule(func() {
			defer wg.Done()
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	wg.Wait()

	if count != 20 {
		t.Errorf("ran %d tasks, want 20", count)
	}
}

func TestScheduleTimeoutWhenSaturated(t *testing.T) {
	p := NewPool(1, 0)
	defer p.Close()

	release := make(chan struct{})
	p.Schedule(func() {
		<-release
	})
	defer close(release)

	err := p.ScheduleTimeout(20*time.Millisecond, func() {})
	if err != ErrScheduleTimeout {
		t.Errorf("err = %v, want ErrScheduleTimeout", err)
	}
}
