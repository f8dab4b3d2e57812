package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// IsBlank reports whether s is empty once surrounding whitespace is removed.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func GetQueryParamAsInt(c fiber.Ctx, paramName string, defaultValue int) (int, error) {
	paramValue := c.Query(paramName)
	if paramValue == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(paramValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	if intValue <= 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	return intValue, nil
}

// GetQueryParamAsFloat parses a required float query parameter and checks it lies in [min, max].
func GetQueryParamAsFloat(c fiber.Ctx, paramName string, min, max float64) (float64, error) {
	paramValue := c.Query(paramName)
	if paramValue == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}

	value, err := strconv.ParseFloat(paramValue, 64)
	if err != nil || math.IsNaN(value) {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %g and %g", paramName, min, max)
	}

	return value, nil
}
