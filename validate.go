// FILE: lixenwraith/appconfig/validate.go
package appconfig

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/lixenwraith/appconfig"

// Valid runs the two-pass validation. See ValidContext.
func (c *Container) Valid() error {
	return c.ValidContext(context.Background())
}

// ValidContext checks that every required parameter is non-nil, runs the
// after-validation callbacks in order, then checks requiredness again against
// the post-callback state. Callback side effects are kept when the second
// check fails. A failing run leaves the validated flag as it was.
//
// Calling it again while a run on the same container is in progress, for
// example from inside a callback, returns ErrValidationInProgress.
func (c *Container) ValidContext(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrValidationInProgress
	}
	defer c.running.Store(false)

	return c.validate(ctx)
}

// Ready runs Valid and marks the container readied on success. See ReadyContext.
func (c *Container) Ready() error {
	return c.ReadyContext(context.Background())
}

// ReadyContext runs ValidContext and, only if it succeeds, sets readied.
// Once readied, parameter reads stay available for the life of the container.
func (c *Container) ReadyContext(ctx context.Context) error {
	if err := c.ValidContext(ctx); err != nil {
		return err
	}

	c.mutex.Lock()
	c.phase.readied = true
	c.mutex.Unlock()

	c.logger.Info("configuration ready", slog.Int("parameters", len(c.Names())))
	return nil
}

func (c *Container) validate(ctx context.Context) (err error) {
	start := time.Now()
	_, span := otel.Tracer(tracerName).Start(ctx, "appconfig.validate",
		trace.WithAttributes(attribute.String("container.id", c.id)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Warn("configuration validation failed",
				slog.String("error", err.Error()),
				slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
			)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	c.mutex.Lock()
	c.phase.validating = true
	missing := c.reg.missing()
	cbs := append(callbacks(nil), c.callbacks...)
	c.mutex.Unlock()

	span.AddEvent("first_pass", trace.WithAttributes(missingAttr(missing)))
	if len(missing) > 0 {
		return c.failValidation(&MissingConfigurationError{Names: missing})
	}

	span.AddEvent("after_validation", trace.WithAttributes(attribute.Int("callbacks", len(cbs))))
	if err := cbs.invokeAll(c); err != nil {
		return c.failValidation(err)
	}

	c.mutex.Lock()
	missing = c.reg.missing()
	if len(missing) > 0 {
		c.phase.validating = false
		c.mutex.Unlock()
		span.AddEvent("final_pass", trace.WithAttributes(missingAttr(missing)))
		return &MissingConfigurationError{Names: missing}
	}
	c.phase.validated = true
	c.phase.validating = false
	c.mutex.Unlock()

	span.AddEvent("final_pass", trace.WithAttributes(missingAttr(nil)))
	c.logger.Debug("configuration validated",
		slog.Int("callbacks", len(cbs)),
		slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
	)
	return nil
}

// failValidation leaves the validating phase and passes err through
func (c *Container) failValidation(err error) error {
	c.mutex.Lock()
	c.phase.validating = false
	c.mutex.Unlock()
	return err
}

func missingAttr(names []string) attribute.KeyValue {
	return attribute.String("missing", strings.Join(names, ","))
}
