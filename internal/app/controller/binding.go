package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ikkim/shop-backend/internal/app/repository"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report json/form names
// instead of Go field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		return "must not be empty"
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

func validationFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Namespace keeps the index for items[1].quantity
		name := fe.Namespace()
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		fields[name] = fieldMessage(fe)
	}
	return fields
}

// bindJSON decodes and validates the body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	useJSONFieldNames()

	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, "Invalid request data", validationFields(err))
		return false
	}
	return true
}

type listQuery struct {
	Skip  int  `form:"skip" binding:"gte=0"`
	Limit *int `form:"limit" binding:"omitnil,gte=1,lte=1000"`
}

// bindPage reads skip/limit from the query string.
func bindPage(c *gin.Context) (skip, limit int, ok bool) {
	useJSONFieldNames()

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid pagination query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidRange,
			fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", repository.MaxLimit))
		return 0, 0, false
	}

	limit = repository.DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	return q.Skip, limit, true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param, entity string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid ID format", map[string]interface{}{
			"param": param,
			"value": raw,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+entity+" ID")
		return 0, false
	}
	return uint(id), true
}
