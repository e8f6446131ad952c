package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/carewise/internal/domain"
)

// SaveStatus is the status line shown after a save attempt.
func SaveStatus(filename string, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Patient data saved successfully to %s", filename)
	case errors.Is(err, domain.ErrMissingFilename):
		return "Please enter a filename to save the patient data."
	default:
		return fmt.Sprintf("❌ Error saving patient data: %v", err)
	}
}

// LoadStatus is the status line shown after a load attempt.
func LoadStatus(filename string, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Patient data loaded successfully from %s", filename)
	case errors.Is(err, domain.ErrMissingFilename):
		return "Please select a file to load."
	case errors.Is(err, domain.ErrFileNotFound):
		return fmt.Sprintf("❌ File %s not found.", filename)
	default:
		return fmt.Sprintf("❌ Error loading patient data: %v", err)
	}
}
