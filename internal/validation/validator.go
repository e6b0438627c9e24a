// Package validation checks raw product form input before it becomes a Product.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"product-dashboard/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Validator checks form input and reports per-field messages.
type Validator interface {
	Validate(fields model.FormFields) model.ValidationErrors
}

// productInput is the parsed form. Pointers stay nil when a value is blank
// or failed to parse.
type productInput struct {
	Name     string   `form:"name" validate:"required,min=2"`
	Price    *float64 `form:"price" validate:"required,gt=0,lte=1000000000"`
	Category string   `form:"category" validate:"required,ne=All"`
	Stock    *int     `form:"stock" validate:"omitempty,gte=0"`
}

// messages maps field and failing tag to the message shown on the form.
var messages = map[string]map[string]string{
	model.FieldName: {
		"required": "Product name is required",
		"min":      "Product name must be at least 2 characters",
	},
	model.FieldPrice: {
		"required": "Price is required",
		"gt":       "Price must be a positive number",
		"lte":      "Price must be a positive number",
	},
	model.FieldCategory: {
		"required": "Category is required",
		"ne":       "Category name is reserved",
	},
	model.FieldStock: {
		"gte": "Stock must be a non-negative number",
	},
}

const (
	msgPriceNotNumber = "Price must be a positive number"
	msgStockNotNumber = "Stock must be a non-negative number"
)

type productValidator struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProductValidator creates a validator for the product form.
func NewProductValidator(logger zerolog.Logger) Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})

	return &productValidator{
		validate: v,
		logger:   logger.With().Str("component", "validation").Logger(),
	}
}

// Validate runs every rule independently and returns at most one message per
// field. Parse failures share the message of the range check for that field.
func (v *productValidator) Validate(fields model.FormFields) model.ValidationErrors {
	errs := model.ValidationErrors{}

	input := productInput{
		Name:     strings.TrimSpace(fields.Name),
		Category: strings.TrimSpace(fields.Category),
	}

	if raw := strings.TrimSpace(fields.Price); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			errs[model.FieldPrice] = msgPriceNotNumber
		} else {
			input.Price = &price
		}
	}

	if raw := strings.TrimSpace(fields.Stock); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			errs[model.FieldStock] = msgStockNotNumber
		} else {
			input.Stock = &stock
		}
	}

	err := v.validate.Struct(input)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.logger.Error().Err(err).Msg("unexpected validator failure")
		return errs
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		errs[field] = msg
	}

	if !errs.Valid() {
		v.logger.Debug().Int("fields", len(errs)).Msg("form failed validation")
	}

	return errs
}
