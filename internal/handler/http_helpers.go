package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/portfolio/internal/locale"
)

var validatorOnce sync.Once

// configureValidator makes validation errors report form field names instead of Go field names.
func configureValidator() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// fieldErrors maps a binding error to localized per-field messages. It returns nil when
// err is not a validation failure.
func fieldErrors(err error, lang string) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		key := "fieldInvalid"
		if fieldErr.Tag() == "required" {
			key = "fieldRequired"
		}
		fields[fieldErr.Field()] = locale.T(lang, key)
	}
	return fields
}

func bindJSON(c *gin.Context, dst interface{}, lang string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields := fieldErrors(err, lang); fields != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": locale.T(lang, "fieldInvalid"), "fields": fields})
			return false
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func idParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
