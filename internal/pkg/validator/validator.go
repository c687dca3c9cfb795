package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Report reason validation
	validate.RegisterValidation("report_reason", func(fl validator.FieldLevel) bool {
		reason := fl.Field().String()
		validReasons := []string{"spam", "harassment", "hate_speech", "nudity", "violence", "misinformation", "copyright", "other"}
		for _, r := range validReasons {
			if reason == r {
				return true
			}
		}
		return false
	})

	// Moderation action validation
	validate.RegisterValidation("mod_action", func(fl validator.FieldLevel) bool {
		action := fl.Field().String()
		validActions := []string{"none", "warning", "hide_content", "delete_content", "suspend_user", "ban_user", ""}
		for _, a := range validActions {
			if action == a {
				return true
			}
		}
		return false
	})

	// Reaction kind validation
	validate.RegisterValidation("reaction_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		return kind == "like" || kind == "dislike"
	})

	// Post status validation
	validate.RegisterValidation("post_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"draft", "scheduled", "published", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "oneof":
			errors[field] = "Must be one of: " + err.Param()
		case "report_reason":
			errors[field] = "Invalid report reason"
		case "mod_action":
			errors[field] = "Invalid moderation action"
		case "reaction_kind":
			errors[field] = "Reaction must be: like or dislike"
		case "post_status":
			errors[field] = "Invalid post status. Must be: draft, scheduled, or published"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
