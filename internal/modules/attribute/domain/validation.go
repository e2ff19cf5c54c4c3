package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
)

const textMaxLength = 255

// Validator decides whether a raw value is acceptable for an attribute.
type Validator interface {
	IsValid(attribute Attribute, value string) bool
}

type ValidatorFunc func(attribute Attribute, value string) bool

func (f ValidatorFunc) IsValid(attribute Attribute, value string) bool {
	return f(attribute, value)
}

// ValidationProvider selects the validator matching the attribute type.
type ValidationProvider struct {
	validators map[AttributeType]Validator
}

func NewValidationProvider() *ValidationProvider {
	return &ValidationProvider{
		validators: map[AttributeType]Validator{
			TextType:        ValidatorFunc(validText),
			TextareaType:    ValidatorFunc(func(Attribute, string) bool { return true }),
			NumericType:     ValidatorFunc(validNumber),
			UnitType:        ValidatorFunc(validNumber),
			PriceType:       ValidatorFunc(validPrice),
			DateType:        ValidatorFunc(validDate),
			SelectType:      ValidatorFunc(validOption),
			MultiSelectType: ValidatorFunc(validOptions),
			ImageType:       ValidatorFunc(func(_ Attribute, v string) bool { return core.IsUUID(v) }),
		},
	}
}

func (p *ValidationProvider) Provide(attribute Attribute) (Validator, error) {
	validator, found := p.validators[attribute.Type]
	if !found {
		return nil, fmt.Errorf("no validator for attribute type '%s'", attribute.Type)
	}

	return validator, nil
}

func validText(_ Attribute, value string) bool {
	return utf8.RuneCountInString(value) <= textMaxLength
}

func validNumber(_ Attribute, value string) bool {
	_, ok := parseFinite(value)
	return ok
}

func validPrice(_ Attribute, value string) bool {
	price, ok := parseFinite(value)
	return ok && price >= 0
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func validDate(attribute Attribute, value string) bool {
	format, ok := attribute.Parameters[DateFormatParameter]
	if !ok || format == "" {
		format = "2006-01-02"
	}

	_, err := time.Parse(format, value)
	return err == nil
}

func validOption(attribute Attribute, value string) bool {
	return attribute.HasOption(value)
}

func validOptions(attribute Attribute, value string) bool {
	for _, key := range strings.Split(value, ",") {
		if !attribute.HasOption(strings.TrimSpace(key)) {
			return false
		}
	}

	return true
}
