package handler

import (
	"net/http"
	"reflect"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail(apierror.CodeValidation, "JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// ok writes the success envelope.
func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, apierror.OK(data))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, apierror.Fail(apierror.CodeValidation, msg))
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, apierror.Fail(apierror.CodeNotFound, msg))
}

func conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, apierror.Fail(apierror.CodeConflict, msg))
}

func internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, apierror.Fail(apierror.CodeInternal, msg))
}
