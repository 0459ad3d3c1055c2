package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
)

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) PingContext(context.Context) error {
	f.calls++
	return f.err
}

func (f *fakePinger) Stats() sql.DBStats { return sql.DBStats{MaxOpenConnections: 7} }

func TestNewDBCircuitBreaker(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	if dcb.CircuitBreaker == nil {
		t.Fatal("expected circuit breaker to be set")
	}
	if dcb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state to be Closed, got %s", dcb.State())
	}
	if err := dcb.PingContext(context.Background()); err != nil {
		t.Errorf("PingContext err=%v", err)
	}
}

func TestDBCircuitBreaker_Stats(t *testing.T) {
	dcb := NewDBCircuitBreaker(&fakePinger{})
	if got := dcb.Stats().MaxOpenConnections; got != 7 {
		t.Errorf("MaxOpenConnections = %d, want 7", got)
	}
}

func TestDBCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	p := &fakePinger{err: errors.New("connection refused")}
	dcb := NewDBCircuitBreakerWithConfig(p, Config{
		Name:             "test-db",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      5,
	})

	for i := 0; i < 5; i++ {
		if err := dcb.PingContext(context.Background()); !errors.Is(err, p.err) {
			t.Fatalf("attempt %d: err=%v, want %v", i+1, err, p.err)
		}
	}
	if !dcb.IsOpen() {
		t.Fatalf("expected open circuit, state=%s", dcb.State())
	}

	err := dcb.PingContext(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err=%v, want ErrOpenState", err)
	}
	if p.calls != 5 {
		t.Errorf("pings=%d, want 5", p.calls)
	}
}

func TestDBCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	p := &fakePinger{err: errors.New("down")}
	dcb := NewDBCircuitBreakerWithConfig(p, Config{
		Name:             "test-db",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 1.0,
		MinRequests:      2,
	})
	_ = dcb.PingContext(context.Background())
	_ = dcb.PingContext(context.Background())
	if !dcb.IsOpen() {
		t.Fatalf("expected open circuit, state=%s", dcb.State())
	}

	time.Sleep(80 * time.Millisecond)
	p.err = nil
	if err := dcb.PingContext(context.Background()); err != nil {
		t.Fatalf("half-open probe err=%v", err)
	}
	if dcb.State() != gobreaker.StateClosed {
		t.Errorf("state=%s, want closed", dcb.State())
	}
}

func TestDBConfig(t *testing.T) {
	cfg := DBConfig()
	if cfg.Name != "database" || cfg.MinRequests != 5 || cfg.FailureThreshold != 1.0 {
		t.Errorf("unexpected DBConfig: %+v", cfg)
	}
}
