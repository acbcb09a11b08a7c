package store

import (
	"errors"
	"testing"
	"time"

	"github.com/buddylink/backend/models"
)

func TestClampLimit(t *testing.T) {
	if ClampLimit(0) != DefaultPageSize {
		t.Fatal("zero should fall back to the default")
	}
	if ClampLimit(-5) != 1 {
		t.Fatal("negative should clamp to 1")
	}
	if ClampLimit(50) != 50 {
		t.Fatal("in-range value should pass through")
	}
	if ClampLimit(1000) != MaxPageSize {
		t.Fatal("oversized value should clamp to the max")
	}
}

func TestParseCursorEmpty(t *testing.T) {
	cursor, err := ParseCursor("")
	if err != nil || cursor != nil {
		t.Fatalf("empty cursor should be nil, nil; got %v, %v", cursor, err)
	}
}

func TestParseCursorRFC3339(t *testing.T) {
	cursor, err := ParseCursor("2026-08-30T12:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if !cursor.Equal(want) {
		t.Fatalf("expected %v, got %v", want, cursor)
	}
}

func TestParseCursorSubSecond(t *testing.T) {
	cursor, err := ParseCursor("2026-08-30T12:00:00.123456789Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor.Nanosecond() != 123456789 {
		t.Fatalf("lost sub-second precision: %v", cursor)
	}
}

func newestFirst(n int) []models.Message {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	messages := make([]models.Message, n)
	for i := range messages {
		messages[i] = models.Message{CreatedAt: base.Add(-time.Duration(i) * time.Minute)}
	}
	return messages
}

func TestTrimPageTwentyFiveMessagesLimitTwenty(t *testing.T) {
	// First page: the store fetches limit+1 rows, so 25 available yields 21.
	page, hasMore := trimPage(newestFirst(21), 20)
	if len(page) != 20 {
		t.Fatalf("expected 20 messages, got %d", len(page))
	}
	if !hasMore {
		t.Fatal("expected hasMore with 5 messages remaining")
	}
	if !page[0].CreatedAt.After(page[19].CreatedAt) {
		t.Fatal("page must stay newest-first")
	}

	// Second page: only 5 rows remain before the cursor.
	rest, hasMore := trimPage(newestFirst(5), 20)
	if len(rest) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(rest))
	}
	if hasMore {
		t.Fatal("expected no more messages after the final page")
	}
}

func TestTrimPageExactBoundary(t *testing.T) {
	// A fetch that returns exactly limit rows means nothing is left; only
	// the limit+1th row may flip hasMore.
	page, hasMore := trimPage(newestFirst(20), 20)
	if len(page) != 20 || hasMore {
		t.Fatalf("boundary page: got %d messages, hasMore=%v", len(page), hasMore)
	}

	empty, hasMore := trimPage(nil, 20)
	if len(empty) != 0 || hasMore {
		t.Fatal("empty fetch must yield an empty page without more")
	}
}

func TestParseCursorGarbage(t *testing.T) {
	for _, raw := range []string{"yesterday", "1234567", "2026-13-45T99:00:00Z"} {
		if _, err := ParseCursor(raw); !errors.Is(err, ErrInvalidCursor) {
			t.Fatalf("cursor %q: expected ErrInvalidCursor, got %v", raw, err)
		}
	}
}
