package goal

import (
	"time"

	"github.com/kulugbekwork/lema/internal/store"
)

// courseCreatedMsg is sent when course generation finishes.
type courseCreatedMsg struct {
	Course *store.Course
	Err    error
}

// spinnerTickMsg animates the loading spinner while generating.
type spinnerTickMsg time.Time
