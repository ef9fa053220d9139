package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeService struct {
	mu    sync.Mutex
	calls int
	err   error
	onRun func(n int)
}

func (f *fakeService) RunCycle(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if f.onRun != nil {
		f.onRun(n)
	}
	return f.err
}

func (f *fakeService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newEntry() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logrus.NewEntry(logger), hook
}

func TestRunSingleCycle(t *testing.T) {
	t.Parallel()
	svc := &fakeService{}
	entry, _ := newEntry()
	r := NewRunner(svc, entry, time.Hour, 1)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if svc.Calls() != 1 || r.Cycles() != 1 {
		t.Fatalf("calls = %d, cycles = %d, want 1", svc.Calls(), r.Cycles())
	}
}

func TestRunRepeatsOnSchedule(t *testing.T) {
	t.Parallel()
	svc := &fakeService{}
	entry, _ := newEntry()
	r := NewRunner(svc, entry, time.Second, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if svc.Calls() != 2 {
		t.Fatalf("calls = %d, want 2", svc.Calls())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{onRun: func(int) { cancel() }}
	entry, _ := newEntry()
	r := NewRunner(svc, entry, time.Hour, 0)

	err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if svc.Calls() != 1 {
		t.Fatalf("calls = %d, want 1", svc.Calls())
	}
}

func TestRunLogsCycleFailure(t *testing.T) {
	t.Parallel()
	svc := &fakeService{err: errors.New("homework API endpoint unavailable")}
	entry, hook := newEntry()
	r := NewRunner(svc, entry, time.Hour, 1)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && strings.HasPrefix(e.Message, "program failure: ") {
			found = true
		}
	}
	if !found {
		t.Fatal("cycle failure was not logged")
	}
}
