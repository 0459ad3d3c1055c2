// Package resilience groups the fault isolation used around external calls.
// Failures are never retried; circuit breakers in the circuitbreaker
// subpackage stop calling a dependency that keeps failing and report the open
// state to health checks.
package resilience
