// file: internals/helpers/validator.go
package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate: instance validator bersama; nama field di error pakai nama json.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
