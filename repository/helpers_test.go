package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/raywall/bar-order-service/dyndb"
)

func newTestTable() *dyndb.MemoryTable {
	return dyndb.NewMemoryTable(Schema("bar-orders-test", DefaultIndexes()))
}

// stepClock avança um segundo a cada leitura.
func stepClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func ptr[T any](v T) *T { return &v }
