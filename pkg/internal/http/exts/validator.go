package exts

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func ValidateStruct(data any) error {
	return validation.Struct(data)
}

// BindAndValidate parses the request body into data. An empty body leaves data untouched.
func BindAndValidate(c *fiber.Ctx, data any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if err := ValidateStruct(data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
