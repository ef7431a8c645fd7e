package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var controlNumberPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// validControlNumber accepts 1-64 letters, digits, dashes or underscores.
func validControlNumber(fl validator.FieldLevel) bool {
	return controlNumberPattern.MatchString(fl.Field().String())
}

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("controlnumber", validControlNumber)
}
