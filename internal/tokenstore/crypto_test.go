package tokenstore

import (
	"bytes"
	"testing"
)

func TestSealUnsealRoundTrip(t *testing.T) {
	sealed, err := Seal("correct horse", "refresh-token-value")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	got, err := Unseal("correct horse", sealed)
	if err != nil {
		t.Fatalf("unseal: %v", err)
	}
	if got != "refresh-token-value" {
		t.Errorf("unsealed = %q, want %q", got, "refresh-token-value")
	}
}

func TestUnsealWrongPassphrase(t *testing.T) {
	sealed, err := Seal("correct horse", "refresh-token-value")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := Unseal("battery staple", sealed); err == nil {
		t.Error("unseal with wrong passphrase succeeded")
	}
}

func TestUnsealTruncated(t *testing.T) {
	if _, err := Unseal("x", []byte("too short")); err == nil {
		t.Error("unseal of truncated data succeeded")
	}
}

func TestSealRandomized(t *testing.T) {
	// A fresh salt and nonce per call: sealing the same value twice must
	// never produce the same bytes.
	a, err := Seal("p", "same value")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	b, err := Seal("p", "same value")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two seals of the same value are identical")
	}
}
