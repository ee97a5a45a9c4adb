// Package instrument provides observability for swapcell cells.
//
// Metrics implements swapcell.Observer backed by Prometheus collectors:
//
//	m := instrument.NewMetrics(instrument.WithNamespace("myapp"))
//	cell := swapcell.New(cfg, swapcell.WithObserver[Config](m))
//
// Update wraps a scoped cell update in an OpenTelemetry span:
//
//	instrument.Update(ctx, cell, func(ctx context.Context, c *Config) {
//	    c.Port = 8080
//	})
//
// Tracing uses the globally registered tracer provider and is a no-op when
// none is configured.
package instrument
