package memory_test

import (
	"testing"

	"github.com/stepedge/concierge/pkg/adapters/memory"
	"github.com/stepedge/concierge/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
