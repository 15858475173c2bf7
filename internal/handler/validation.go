package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func oneOf(fl validator.FieldLevel) bool {
	matches := strings.Split(fl.Param(), " ")
	value := fl.Field().String()
	for _, match := range matches {
		if match == value {
			return true
		}
	}
	return false
}

// notBlank rejects strings consisting only of whitespace, which "required" lets through.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// RegisterValidation Inspiration: https://blog.logrocket.com/gin-binding-in-go-a-tutorial-with-examples/
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("error getting validation engine")
	}

	if err := v.RegisterValidation("oneOf", oneOf); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", notBlank)
}
