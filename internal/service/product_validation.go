package service

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/validation"
)

// Fields is a decoded JSON request body. Handlers decode with
// json.Decoder.UseNumber so numeric values arrive as json.Number and a
// non-numeric quantity can be reported as a field error instead of a
// decode failure.
type Fields map[string]any

// Validation messages, matching one fixed string per rule.
const (
	msgNameRequired     = "The name field is required."
	msgNameString       = "The name must be a string."
	msgDescString       = "The description must be a string."
	msgPriceRequired    = "The price field is required."
	msgPriceNumber      = "The price must be a number."
	msgPriceMin         = "The price must be at least 0."
	msgPricePrecision   = "The price must have at most two decimal places."
	msgQuantityRequired = "The quantity field is required."
	msgQuantityInteger  = "The quantity must be an integer."
	msgQuantityMin      = "The quantity must be at least 0."
	msgSlugString       = "The slug must be a string."
	msgSlugFormat       = "The slug format is invalid."
	msgSlugTaken        = "The slug has already been taken."
)

// productInput holds the parsed product fields. A nil pointer means the
// field was not supplied, which partial updates leave untouched.
type productInput struct {
	name        *string
	description *string
	price       *model.Price
	quantity    *int64
	slug        *string
}

// parseProductFields runs the statically defined per-field validators over a
// decoded request body. Every rule is evaluated eagerly; all violations come
// back in one field-keyed map. With partial set, absent fields are skipped
// instead of being required.
func parseProductFields(fields Fields, partial bool) (productInput, validation.Errors) {
	var input productInput
	verrs := validation.Errors{}

	validateName(fields, partial, &input, verrs)
	validateDescription(fields, &input, verrs)
	validatePrice(fields, partial, &input, verrs)
	validateQuantity(fields, partial, &input, verrs)
	validateSlug(fields, &input, verrs)

	return input, verrs
}

func validateName(fields Fields, partial bool, input *productInput, verrs validation.Errors) {
	raw, supplied := fields["name"]
	if !supplied || raw == nil {
		if !partial {
			verrs.Add("name", msgNameRequired)
		}
		return
	}

	name, ok := raw.(string)
	if !ok {
		verrs.Add("name", msgNameString)
		return
	}
	if name == "" {
		verrs.Add("name", msgNameRequired)
		return
	}
	input.name = &name
}

func validateDescription(fields Fields, input *productInput, verrs validation.Errors) {
	raw, supplied := fields["description"]
	if !supplied || raw == nil {
		return
	}

	description, ok := raw.(string)
	if !ok {
		verrs.Add("description", msgDescString)
		return
	}
	input.description = &description
}

func validatePrice(fields Fields, partial bool, input *productInput, verrs validation.Errors) {
	raw, supplied := fields["price"]
	if !supplied || raw == nil {
		if !partial {
			verrs.Add("price", msgPriceRequired)
		}
		return
	}

	num, ok := raw.(json.Number)
	if !ok {
		verrs.Add("price", msgPriceNumber)
		return
	}

	price, err := model.ParsePrice(num.String())
	switch {
	case errors.Is(err, model.ErrPriceTooPrecise):
		verrs.Add("price", msgPricePrecision)
		return
	case err != nil:
		verrs.Add("price", msgPriceNumber)
		return
	}

	if price < 0 {
		verrs.Add("price", msgPriceMin)
		return
	}
	input.price = &price
}

func validateQuantity(fields Fields, partial bool, input *productInput, verrs validation.Errors) {
	raw, supplied := fields["quantity"]
	if !supplied || raw == nil {
		if !partial {
			verrs.Add("quantity", msgQuantityRequired)
		}
		return
	}

	// Strings and floats are rejected, never coerced.
	num, ok := raw.(json.Number)
	if !ok {
		verrs.Add("quantity", msgQuantityInteger)
		return
	}
	quantity, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		verrs.Add("quantity", msgQuantityInteger)
		return
	}

	if quantity < 0 {
		verrs.Add("quantity", msgQuantityMin)
		return
	}
	input.quantity = &quantity
}

func validateSlug(fields Fields, input *productInput, verrs validation.Errors) {
	raw, supplied := fields["slug"]
	if !supplied || raw == nil {
		return
	}

	slug, ok := raw.(string)
	if !ok {
		verrs.Add("slug", msgSlugString)
		return
	}
	if !ValidSlugFormat(slug) {
		verrs.Add("slug", msgSlugFormat)
		return
	}
	input.slug = &slug
}
