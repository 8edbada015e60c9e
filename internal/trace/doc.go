// Package trace provides lightweight structured tracing for the formatter
// pipeline: driver phases, per-file work and external tool invocations.
//
// Tracers are attached to a context.Context via WithTracer and retrieved with
// FromContext. When nothing is attached, the Nop tracer is returned, so call
// sites never need nil checks.
//
// Output formats:
//
//   - text: one human-readable line per event;
//   - ndjson: one JSON object per line, suitable for jq and log shippers.
package trace
