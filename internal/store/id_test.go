package store

import (
	"strings"
	"testing"
)

func TestGenerateMessageID(t *testing.T) {
	seen := make(map[string]struct{}, 50)
	for i := 0; i < 50; i++ {
		id, err := GenerateMessageID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(id, messageIDPrefix) {
			t.Fatalf("expected prefix %s, got %s", messageIDPrefix, id)
		}
		if len(id) != len(messageIDPrefix)+36 {
			t.Fatalf("expected uuid after prefix, got %s", id)
		}
		if !ValidMessageID(id) {
			t.Fatalf("generated id %s does not validate", id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
