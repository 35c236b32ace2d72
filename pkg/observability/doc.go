/*
Package observability turns lifecycle hooks into Prometheus metrics and
structured log lines.

Metrics are registered on a dedicated registry so several engines can live in
one process; Handler exposes it for scraping.
*/
package observability
