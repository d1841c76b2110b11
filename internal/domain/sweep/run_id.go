package sweep

import (
	"fmt"

	"github.com/google/uuid"
)

// RunID identifies one stored sweep
type RunID struct {
	value string
}

// NewRunID generates a random id
func NewRunID() RunID {
	return RunID{value: uuid.New().String()}
}

// ParseRunID validates an id read from a user or from storage
func ParseRunID(id string) (RunID, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RunID{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	return RunID{value: id}, nil
}

func (id RunID) String() string {
	return id.value
}

func (id RunID) IsZero() bool {
	return id.value == ""
}
