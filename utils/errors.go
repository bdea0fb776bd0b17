package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// CreateError stops the request with a JSON body the SDK knows how to read:
// every error response carries an "error" string.
func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"title": title, "error": detail})
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "resource not found", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(iris.StatusForbidden, "Forbidden", "you do not have access to this resource", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "email already registered", ctx)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "internal server error", ctx)
}

// HandleValidationErrors flattens validator.ValidationErrors into one message.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			parts = append(parts, e.Field()+" failed on '"+e.Tag()+"'")
		}
		CreateError(iris.StatusBadRequest, "Validation Error", strings.Join(parts, "; "), ctx)
		return
	}
	CreateError(iris.StatusBadRequest, "Bad Request", err.Error(), ctx)
}
