package config

import (
	"errors"
)

// ParseOutputMode converts an output mode string to an OutputMode
func ParseOutputMode(mode string) (OutputMode, error) {
	switch OutputMode(mode) {
	case Full, Brief:
		return OutputMode(mode), nil
	default:
		return "", errors.New("invalid output mode, must be 'full' or 'brief'")
	}
}
