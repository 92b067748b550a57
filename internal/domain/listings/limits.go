package listings

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"pridenomad-hub/internal/domain/plans"
)

// FieldError is one violation; a record can have several.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateTierLimits checks b against the limits of tier. It never stops at
// the first problem.
func ValidateTierLimits(tier plans.Tier, b *Business) []FieldError {
	limits := plans.LimitsFor(tier)
	var errs []FieldError

	if plans.Exceeds(len(b.Categories), limits.MaxCategories) {
		errs = append(errs, FieldError{
			Field:   "categories",
			Message: fmt.Sprintf("%s tier allows at most %d categories", tier, limits.MaxCategories),
		})
	}
	if plans.Exceeds(len(b.Photos), limits.MaxImages) {
		errs = append(errs, FieldError{
			Field:   "photos",
			Message: fmt.Sprintf("%s tier allows at most %d images", tier, limits.MaxImages),
		})
	}
	if plans.Exceeds(utf8.RuneCountInString(b.Description), limits.MaxDescriptionLength) {
		errs = append(errs, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("%s tier allows at most %d characters", tier, limits.MaxDescriptionLength),
		})
	}
	if strings.TrimSpace(b.VideoURL) != "" && !limits.AllowsVideo {
		errs = append(errs, FieldError{
			Field:   "videoUrl",
			Message: fmt.Sprintf("%s tier does not allow video", tier),
		})
	}
	if len(b.SubCategories) > 0 && !limits.AllowsSubCategories {
		errs = append(errs, FieldError{
			Field:   "subCategories",
			Message: fmt.Sprintf("%s tier does not allow sub-categories", tier),
		})
	}
	return errs
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so errors line up with request fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateFields runs the struct tag rules (required name, email/url formats).
func ValidateFields(b *Business) []FieldError {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "business", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return out
}

// Validate combines field rules and tier limits.
func Validate(tier plans.Tier, b *Business) []FieldError {
	return append(ValidateFields(b), ValidateTierLimits(tier, b)...)
}
