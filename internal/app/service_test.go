package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
	release  chan struct{}
}

func newFakeService(name string, block bool, startErr error) *fakeService {
	return &fakeService{name: name, block: block, startErr: startErr, release: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if !s.block {
		return s.startErr
	}
	<-s.release
	return nil
}

func (s *fakeService) Stop(ctx context.Context) error {
	if s.stopped.CompareAndSwap(false, true) && s.block {
		close(s.release)
	}
	return nil
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	failing := newFakeService("broken", false, errors.New("boom"))
	blocking := newFakeService("http", true, nil)
	runner := NewRunner(failing, blocking)

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected start error, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("blocking service should be stopped")
	}
}

func TestRunnerReturnsNilOnContextCancel(t *testing.T) {
	blocking := newFakeService("worker", true, nil)
	runner := NewRunner(blocking)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancel should end cleanly, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop after cancel")
	}
	if !blocking.stopped.Load() {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerServiceExitStopsOthers(t *testing.T) {
	finished := newFakeService("once", false, nil)
	blocking := newFakeService("http", true, nil)

	if err := NewRunner(finished, blocking).Run(context.Background(), time.Second, nil); err != nil {
		t.Fatalf("normal exit should return nil, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("remaining services should be stopped")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error without services")
	}
}

func TestBuildRunnerRejectsNilConfig(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("expected nil config error")
	}
}

func TestHTTPServiceConfiguresTimeouts(t *testing.T) {
	svc := NewHTTPService("127.0.0.1:0", nil)
	if svc.Name() != "http" || svc.Addr() != "127.0.0.1:0" {
		t.Fatalf("unexpected service identity %s %s", svc.Name(), svc.Addr())
	}
	if svc.server.ReadHeaderTimeout != httpReadHeaderTimeout {
		t.Fatalf("read header timeout not set")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start should not fail: %v", err)
	}
}
