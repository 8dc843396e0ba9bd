package utils

import (
	"errors"
	"os"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrNotFound         = errors.New("notebook not found or unreadable") // Wraps the underlying os error
	ErrParsing          = errors.New("parsing error")                    // Wraps JSON/structure errors
	ErrInvalidValue     = errors.New("invalid value")                    // Bad request arguments (e.g. non-integer depth)
	ErrUnknownMagic     = errors.New("unknown magic command")
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrUnknownExtension = errors.New("unknown extension")
	ErrConfigValidation = errors.New("configuration validation error")
)

// CategorizeError maps an error to a predefined category string for logging and error reporting.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrNotFound):
		if errors.Is(err, os.ErrPermission) {
			return "Input_Permission"
		}
		if errors.Is(err, os.ErrNotExist) {
			return "Input_NotExist"
		}
		return "Input_NotFound"
	case errors.Is(err, ErrParsing):
		errMsg := err.Error()
		if strings.Contains(errMsg, "JSON") {
			return "Content_ParsingJSON"
		}
		if strings.Contains(errMsg, "cells") {
			return "Content_MissingCells"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrInvalidValue):
		return "Request_InvalidValue"
	case errors.Is(err, ErrUnknownMagic):
		return "Request_UnknownMagic"
	case errors.Is(err, ErrUnknownFormat):
		return "Request_UnknownFormat"
	case errors.Is(err, ErrUnknownExtension):
		return "Request_UnknownExtension"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	// Fallback for raw filesystem errors that were not wrapped
	if errors.Is(err, os.ErrNotExist) {
		return "Filesystem_NotExist"
	}
	if errors.Is(err, os.ErrPermission) {
		return "Filesystem_Permission"
	}

	return "Unknown"
}
