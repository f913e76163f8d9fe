/*
Package observability exposes validation outcomes as Prometheus metrics.

Metrics implements flowguard.Recorder, so it can be plugged into a Validator with
flowguard.WithRecorder and served by the HTTP adapter on /metrics.
*/
package observability
