package circuitbreaker

import (
	"context"
	"database/sql"
	"time"
)

// DBConfig opens the circuit for 30 seconds after five failed pings in a row.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// Pinger is the part of *sql.DB the probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// DBCircuitBreaker puts health and readiness pings behind a breaker, so a
// dead database is reported at once instead of after a ping timeout on every
// probe. State and IsOpen come from the embedded breaker.
type DBCircuitBreaker struct {
	*CircuitBreaker
	db Pinger
}

func NewDBCircuitBreaker(db Pinger) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

func NewDBCircuitBreakerWithConfig(db Pinger, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{CircuitBreaker: New(cfg), db: db}
}

// PingContext pings through the breaker. While open it fails with an error
// satisfying Rejected and leaves the database alone.
func (d *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := Do(d.CircuitBreaker, func() (struct{}, error) {
		return struct{}{}, d.db.PingContext(ctx)
	})
	return err
}

func (d *DBCircuitBreaker) Stats() sql.DBStats { return d.db.Stats() }
