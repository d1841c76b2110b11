package sweep

import "fmt"

// ErrRunNotFound is returned when no stored run has the requested id
type ErrRunNotFound struct {
	ID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("sweep run not found: id=%s", e.ID)
}
