package utils

import (
	"testing"
)

func TestHash_Deterministic(t *testing.T) {
	first, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical digests, got %q and %q", first, second)
	}
	if first == "hunter22" {
		t.Error("digest should not equal the plaintext")
	}
}

func TestHash_DifferentInputsDiffer(t *testing.T) {
	first, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Hash("hunter23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected different digests for different inputs")
	}
}

func TestHash_EmptyInput(t *testing.T) {
	if _, err := Hash(""); err == nil {
		t.Error("expected an error hashing the empty string")
	}
}

func TestHash_KeyedBySecret(t *testing.T) {
	original := HashingSecret
	defer func() { HashingSecret = original }()

	first, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	HashingSecret = []byte("aDifferentSecret")
	second, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected the digest to change with the secret")
	}
}
