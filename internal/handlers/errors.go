package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StatusFor maps a service error onto its HTTP status.
func StatusFor(err error) int {
	var computation *matching.ComputationError
	switch {
	case errors.Is(err, matching.ErrInvalidRequest),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrNoText):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, matching.ErrModelUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &computation):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

func errorTitle(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "invalid request"
	case fiber.StatusNotFound:
		return "not found"
	case fiber.StatusServiceUnavailable:
		return "model unavailable"
	}
	return "internal error"
}

// writeError renders err as {"error", "detail"} with the status StatusFor picks.
func writeError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	return c.Status(status).JSON(fiber.Map{
		"error":  errorTitle(status),
		"detail": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  errorTitle(fiber.StatusBadRequest),
		"detail": detail,
	})
}

// decodeStrict decodes a JSON body rejecting unknown fields and trailing
// data, then runs struct validation.
func decodeStrict(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return &matching.InvalidRequestError{Reason: fmt.Sprintf("malformed JSON body: %v", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &matching.InvalidRequestError{Reason: "body must contain a single JSON object"}
	}

	if err := validate.Struct(dst); err != nil {
		return &matching.InvalidRequestError{Reason: describeValidation(err)}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
