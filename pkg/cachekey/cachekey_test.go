package cachekey

import (
	"strings"
	"testing"
)

func TestForArgs_Deterministic(t *testing.T) {
	a := ForArgs("search", "lofi beats", "2025-01-01T00:00:00Z", "10", "US")
	b := ForArgs("search", "lofi beats", "2025-01-01T00:00:00Z", "10", "US")
	if a != b {
		t.Errorf("same args produced different keys: %q vs %q", a, b)
	}
}

func TestForArgs_DistinguishesArgs(t *testing.T) {
	a := ForArgs("search", "lofi beats", "US")
	b := ForArgs("search", "lofi beats", "GB")
	if a == b {
		t.Error("different args produced the same key")
	}

	// Joined-argument ambiguity: ("ab","c") must differ from ("a","bc").
	x := ForArgs("videos", "ab", "c")
	y := ForArgs("videos", "a", "bc")
	if x == y {
		t.Error("argument boundaries were lost in key derivation")
	}
}

func TestForArgs_DistinguishesOps(t *testing.T) {
	a := ForArgs("videos", "abc123")
	b := ForArgs("channels", "abc123")
	if a == b {
		t.Error("different operations produced the same key")
	}
}

func TestForArgs_Prefix(t *testing.T) {
	key := ForArgs("search", "anything")
	if !strings.HasPrefix(key, Prefix) {
		t.Errorf("key %q missing prefix %q", key, Prefix)
	}
}

func TestSHA256Hex(t *testing.T) {
	// Known vector for the empty string.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := SHA256Hex(""); got != want {
		t.Errorf("SHA256Hex(\"\") = %q, want %q", got, want)
	}
}
