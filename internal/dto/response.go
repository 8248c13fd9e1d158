package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	res "github.com/Jam721/VkWebHomework/packages/response"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// ErrorResponse writes the envelope with the HTTP status matching the business code.
// Form errors also carry data.error_type.
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	if err.Type == "" {
		c.JSON(err.Code.HTTPStatus(), res.ErrorResponse(err.Code, err.Msg))
		return
	}
	c.JSON(err.Code.HTTPStatus(), res.CustomResponse(
		res.WithCode(err.Code),
		res.WithMessage(err.Msg),
		res.WithData(gin.H{"error_type": err.Type}),
	))
}

// FormErrorResponse reports a form failure with a machine-readable error type.
func FormErrorResponse(c *gin.Context, code res.ResponseCode, errorType, message string) {
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(code),
		res.WithErrorMessage(message),
		res.WithErrorType(errorType),
	))
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := getJSONFieldName(firstErr)

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("field '%s' is required", jsonField)
		case "max":
			message = fmt.Sprintf("field '%s' must be at most %s characters", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("field '%s' must be at least %s characters", jsonField, firstErr.Param())
		case "email":
			message = fmt.Sprintf("field '%s' must be a valid email address", jsonField)
		case "eqfield":
			message = fmt.Sprintf("field '%s' must match '%s'", jsonField, toSnakeCase(firstErr.Param()))
		case "oneof":
			message = fmt.Sprintf("field '%s' must be one of: %s", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("field '%s' failed validation: %s", jsonField, firstErr.Tag())
		}

		FormErrorResponse(c, res.InvalidParameter, "form_invalid", message)
		return
	}

	// 如果不是 validation 错误，返回原始错误消息
	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("invalid request: "+err.Error()),
	))
}

// getJSONFieldName 获取字段的JSON标签名称
func getJSONFieldName(fe validator.FieldError) string {
	field := fe.StructNamespace()
	if strings.Contains(field, ".") {
		parts := strings.Split(field, ".")
		return toSnakeCase(parts[len(parts)-1])
	}
	return toSnakeCase(fe.Field())
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(s[i-1])
			if prev < 'A' || prev > 'Z' {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
