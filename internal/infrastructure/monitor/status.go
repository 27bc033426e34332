package monitor

import "time"

// Status is a point-in-time snapshot of the datastore probes.
type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether the service can do useful work: both primary
// stores must answer. The buffer is advisory and never fails health.
func (s Status) Healthy() bool {
	return s.PostgreSQL && s.Redis
}
