package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-platform-backend/errs"
)

// maxBodyBytes bounds request bodies; post content is the largest payload
const maxBodyBytes = 2 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest reads a JSON body into dst, applies normalize and validates the result
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, payloadName string, normalize func(*T)) (*T, error) {
	var dst T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&dst); err != nil {
		return nil, errs.NewMalformedPayloadError(payloadName, err)
	}
	if normalize != nil {
		normalize(&dst)
	}
	if err := validateRequest(&dst); err != nil {
		return nil, err
	}
	return &dst, nil
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewBadRequestError(err.Error())
	}

	first := fieldErrs[0]
	if first.Tag() == "required" {
		return errs.NewMissingRequiredFieldError(first.Field())
	}
	return errs.NewInvalidFieldError(first.Field(), "failed "+first.Tag()+" check")
}

// uuidParam parses a UUID URL parameter
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}
