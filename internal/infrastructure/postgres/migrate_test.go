package postgres

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source"
)

// RunMigrations resolves its migration directory through the "file" source
// scheme, which only exists when the driver is linked into the binary.
func TestFileSourceDriverRegistered(t *testing.T) {
	drv, err := source.Open("file://" + t.TempDir())
	if err != nil {
		t.Fatalf("source.Open() error = %v, want file driver registered", err)
	}
	drv.Close()
}
