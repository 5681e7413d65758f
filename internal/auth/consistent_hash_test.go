package auth

import "testing"

func TestRingStableMapping(t *testing.T) {
	t.Parallel()

	ring := NewConsistentHashRing([]string{"n1", "n2", "n3"}, 50)

	first := ring.GetNode("some-token")
	for i := 0; i < 10; i++ {
		if got := ring.GetNode("some-token"); got != first {
			t.Fatalf("mapping not stable: got %q want %q", got, first)
		}
	}
	if first != "n1" && first != "n2" && first != "n3" {
		t.Fatalf("unknown node %q", first)
	}
}

func TestRingEmptyNodesGetsDefault(t *testing.T) {
	t.Parallel()

	ring := NewConsistentHashRing(nil, 0)
	if got := ring.GetNode("anything"); got == "" {
		t.Fatal("expected a default node, got empty string")
	}
}

func TestRingAddIsIdempotent(t *testing.T) {
	t.Parallel()

	ring := NewConsistentHashRing([]string{"n1"}, 10)
	before := len(ring.keys)
	ring.Add("n1")
	if len(ring.keys) != before {
		t.Fatalf("duplicate add grew the ring: %d -> %d", before, len(ring.keys))
	}
}
