package sim

import (
	"fmt"
	"time"

	"github.com/rs/xid"
)

// NewRunID returns a globally unique identifier for a simulation run. IDs
// sort by creation time.
func NewRunID() string {
	return xid.New().String()
}

// RunStartTime returns the wall-clock second at which a run ID was created.
func RunStartTime(runID string) (time.Time, error) {
	id, err := xid.FromString(runID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run id %q: %w", runID, err)
	}

	return id.Time(), nil
}
