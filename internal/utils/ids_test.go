package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID(PrefixTransaction)

	parts := strings.Split(id, "_")
	assert.Len(t, parts, 3, "id should be <prefix>_<millis>_<hex>")
	assert.Equal(t, PrefixTransaction, parts[0])
	assert.Len(t, parts[2], 12, "6 random bytes hex encode to 12 characters")
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID(PrefixLedger)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
