package controller

import (
	"fmt"
	"house-auction-api/internal/service"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// serviceErrorResponse maps the service sentinels onto HTTP statuses; the
// gateway adds nothing to the taxonomy.
func serviceErrorResponse(c echo.Context, err error) error {
	switch err {
	case service.ErrUnauthorized:
		return c.JSON(http.StatusForbidden, errorResponse{"Caller doesn't have admin rights for this operation"})
	case service.ErrListingNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no listing with given id"})
	case service.ErrInvalidState:
		return c.JSON(http.StatusConflict, errorResponse{"Listing lifecycle state doesn't allow this operation"})
	case service.ErrInvalidInput:
		return c.JSON(http.StatusBadRequest, errorResponse{"Required field is empty or price is negative"})
	case service.ErrBidTooLow:
		return c.JSON(http.StatusBadRequest, errorResponse{"Bid must exceed the current highest bid or the start price"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

func parseListingId(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("listingId"), 10, 64)
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s := ""
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	switch fe.Type().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return getMessageForInt(fe)
	}

	return "Unknown error (2)"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}
