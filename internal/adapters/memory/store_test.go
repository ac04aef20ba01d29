package memory

import (
	"testing"

	"github.com/vitrinehq/vitrine/pkg/ports"
)

func TestSnapshotStoreContract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, NewSnapshotStore())
}
