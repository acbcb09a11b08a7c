package store

import "github.com/google/uuid"

// PairKey normalizes an unordered user pair into a stable "minID:maxID"
// string. Direct chats store it under a unique index, which is what makes
// first-contact creation idempotent even when two requests race.
func PairKey(a, b uuid.UUID) string {
	as, bs := a.String(), b.String()
	if bs < as {
		as, bs = bs, as
	}
	return as + ":" + bs
}
