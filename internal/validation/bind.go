package validation

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Ant-man74/HeraWebMono/internal/httperr"
)

// New returns a configured validator.
func New() *validatorv10.Validate {
	return validatorv10.New()
}

// BindAndValidate binds the JSON body into `out` and runs validation.
// If either step fails, it writes a 400 response and returns an error for the
// handler to short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		httperr.Write(c, http.StatusBadRequest, "malformed request body")
		return err
	}

	if err := v.Struct(out); err != nil {
		httperr.WriteFields(c, http.StatusBadRequest, "validation failed", validationErrorsToMap(err))
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "'"
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
