package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/act-survey-api/internal/middleware"
	"github.com/noah-isme/act-survey-api/internal/service"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// submissionForm collects the named fields from a form-encoded, multipart or JSON body.
func submissionForm(c *fiber.Ctx, fields []string) (service.SubmissionForm, error) {
	form := make(service.SubmissionForm, len(fields))

	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		var body map[string]interface{}
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return nil, err
		}
		for _, field := range fields {
			form[field] = jsonFieldValue(body[field])
		}
		return form, nil
	}

	for _, field := range fields {
		if value := c.FormValue(field); value != "" {
			form[field] = &value
		} else {
			form[field] = nil
		}
	}
	return form, nil
}

func jsonFieldValue(raw interface{}) *string {
	var value string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		value = v
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		value = fmt.Sprint(v)
	}
	return &value
}
