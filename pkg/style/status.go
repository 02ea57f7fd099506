package style

import "strings"

// Status is the visual validation state of a field.
type Status string

const (
	StatusDefault Status = "default"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

// StatusOf derives a field status from its messages. An error always wins
// over a success message.
func StatusOf(errMessage, successMessage string) Status {
	if strings.TrimSpace(errMessage) != "" {
		return StatusError
	}
	if strings.TrimSpace(successMessage) != "" {
		return StatusSuccess
	}
	return StatusDefault
}
