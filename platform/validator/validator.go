// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegionChecker reports whether a country code names a supported region.
type RegionChecker interface {
	IsSupportedRegion(countryCode string) bool
}

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance.
// Domain-specific validation rules can be registered using RegisterValidation.
func New() *Validator {
	return &Validator{
		v: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NewWithRegions creates a Validator with the "region" tag bound to regions.
func NewWithRegions(regions RegionChecker) *Validator {
	val := New()
	// Registration only fails for an empty tag or nil func.
	_ = val.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return regions.IsSupportedRegion(strings.TrimSpace(fl.Field().String()))
	})
	return val
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// Fields flattens validation errors to field name -> failed tag, for
// response details. Errors that are not validation errors yield nil.
func Fields(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
