// Package util contains small helpers shared by the CLI
package util

import (
	"os"
)

// FileExists returns true if a file with the given filename exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
