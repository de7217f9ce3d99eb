package content

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

var (
	validate  *validator.Validate
	sanitizer = bluemonday.UGCPolicy()
	indexExpr = regexp.MustCompile(`\[(\d+)\]`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateStruct checks s against its validate tags. The result is never nil so callers can
// keep adding to it.
func validateStruct(s interface{}) errs.ValidationErrors {
	out := errs.ValidationErrors{}

	err := validate.Struct(s)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("_", err.Error())
		return out
	}
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		out.Add(field, message(field, fe))
	}
	return out
}

// fieldPath turns "ServiceInput.faqs[1].question" into "faqs.1.question".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return indexExpr.ReplaceAllString(namespace, ".$1")
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s field must not have more than %s items.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s field must be a valid URL.", field)
	case "oneof", "uuid", "uuid4":
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

// requireStatus enforces the status rule of edit forms.
func requireStatus(status string, v errs.ValidationErrors) {
	if status == "" {
		v.Add("status", "The status field is required.")
	}
}

// statusOr parses an already validated status, using def when empty.
func statusOr(status string, def models.Status) models.Status {
	if s, ok := models.ParseStatus(status); ok {
		return s
	}
	return def
}

// sanitizeRichText keeps the formatting tags of the admin editor and drops scripts,
// event handlers and the like.
func sanitizeRichText(html string) string {
	return strings.TrimSpace(sanitizer.Sanitize(html))
}
