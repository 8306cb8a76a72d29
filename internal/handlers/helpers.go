package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftlocal/workshop_hub/internal/events"
	"github.com/craftlocal/workshop_hub/internal/logging"
	"github.com/craftlocal/workshop_hub/internal/schema"
)

// bindObject decodes the request body into a raw JSON object for schema
// validation. A body that is not a JSON object at all counts as one body-level
// field error rather than a 500.
func bindObject(c echo.Context) (map[string]any, *schema.ValidationError) {
	raw := map[string]any{}
	if err := c.Bind(&raw); err != nil {
		return nil, &schema.ValidationError{Errors: []schema.FieldError{
			{Field: "body", Message: "must be a JSON object"},
		}}
	}
	return raw, nil
}

func validationResponse(c echo.Context, message string, verr *schema.ValidationError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"message": message,
		"errors":  verr.Errors,
	})
}

// publish fires a domain event without failing the request. The producer may
// be nil when no broker is configured.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}
