package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxIngredientNameLength is the longest ingredient name accepted.
const MaxIngredientNameLength = 100

// ValidationError represents a single field-level error on one row.
// Row is 1-indexed; Row 0 marks a list-level error.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorMessages flattens validation errors into display strings.
func ErrorMessages(errs []ValidationError) []string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return msgs
}

// ValidateIngredients checks every named ingredient row and collects all
// errors rather than stopping at the first, so the caller can show the
// complete list. Blank-named rows are skipped without being validated or
// counted. An empty result means the input may be calculated.
func ValidateIngredients(ingredients []Ingredient) []ValidationError {
	var errs []ValidationError
	hasValid := false

	for i, ing := range ingredients {
		rowNum := i + 1
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		hasValid = true

		if utf8.RuneCountInString(name) > MaxIngredientNameLength {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   "name",
				Message: fmt.Sprintf("ingredient name is too long (max %d characters)", MaxIngredientNameLength),
			})
		}
		if ing.Quantity <= 0 {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   "quantity",
				Message: "quantity must be greater than 0",
			})
		}
		if ing.PricePerUnit <= 0 {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   "price_per_unit",
				Message: "price per unit must be greater than 0",
			})
		}
		if strings.TrimSpace(ing.Unit) == "" {
			errs = append(errs, ValidationError{
				Row:     rowNum,
				Field:   "unit",
				Message: "unit is required",
			})
		}
	}

	if !hasValid {
		errs = append(errs, ValidationError{
			Field:   "ingredients",
			Message: "at least one valid ingredient is required",
		})
	}

	return errs
}
