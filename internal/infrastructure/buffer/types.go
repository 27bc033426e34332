package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item represents a task write that should be retried once Postgres is
// reachable again. Completions are never buffered.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
