package controller

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation failures are reported under the names the client actually
// sent, so the validator must resolve field names through the form/json
// tags instead of the Go struct field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" && name != "-" {
				return name
			}
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindErrorResponse turns a binding failure into a 400 payload with one
// message per failing field, instead of leaking the validator's raw error
// string.
func bindErrorResponse(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": err.Error()}
	}

	fields := gin.H{}
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return gin.H{"error": "Validation failed", "fields": fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}
