package trace

import (
	"context"
	"time"
)

// ctxKey is the key type for storing Tracer in context.
type ctxKey struct{}

// FromContext extracts the Tracer from context.
// If not found, returns Nop tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// Point emits an instant event through the tracer stored in ctx.
func Point(ctx context.Context, scope Scope, name, detail string, extra map[string]string) {
	emit(ctx, KindPoint, scope, name, detail, extra)
}

// Error emits a handled-failure event through the tracer stored in ctx.
func Error(ctx context.Context, scope Scope, name string, err error, extra map[string]string) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	emit(ctx, KindError, scope, name, detail, extra)
}

// Begin emits a begin event and returns a function emitting the matching end
// event with the elapsed duration.
func Begin(ctx context.Context, scope Scope, name string) func() {
	t := FromContext(ctx)
	if !t.Enabled() {
		return func() {}
	}
	start := time.Now()
	emit(ctx, KindBegin, scope, name, "", nil)
	return func() {
		emit(ctx, KindEnd, scope, name, "", map[string]string{"elapsed": time.Since(start).String()})
	}
}

func emit(ctx context.Context, kind Kind, scope Scope, name, detail string, extra map[string]string) {
	t := FromContext(ctx)
	if !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   kind,
		Scope:  scope,
		Name:   name,
		Detail: detail,
		Extra:  extra,
	})
}
