/*
Package observability provides monitoring for the rig's playback engine.

It turns lifecycle hooks into Prometheus metrics and structured log
lines, and exposes the standard /metrics handler for scraping.
*/
package observability
