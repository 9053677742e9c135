package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseBool converts string to bool with default value
func ParseBool(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return result
}

// ParseDate parses a YYYY-MM-DD query parameter; nil when empty or malformed
func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	result, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}

	return &result
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
