// Package observability turns engine lifecycle hooks into Prometheus metrics and
// in-process event streams.
package observability
