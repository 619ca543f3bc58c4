package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Record id prefixes. Every persisted row is keyed by
// <prefix>_<unix-millis>_<random-hex>.
const (
	PrefixTransaction = "txn"
	PrefixCustomer    = "cust"
	PrefixLedger      = "ldg"
	PrefixStock       = "stk"
	PrefixRateCut     = "cut"
	PrefixMerchant    = "mer"
)

// NewID generates a record id of the form <prefix>_<unix-millis>_<random-hex>.
// The timestamp component makes ids roughly sortable by creation time; the
// random suffix makes collisions within a millisecond practically impossible.
func NewID(prefix string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is broken; there
		// is no sane way to continue generating identifiers at that point.
		panic(fmt.Sprintf("ids: crypto/rand unavailable: %v", err))
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b))
}
