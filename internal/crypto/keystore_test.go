package crypto_test

import (
	"errors"
	"testing"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
)

func TestKeystore_SealOpen_OK(t *testing.T) {
	_, priv, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("generate key pair: %v", err)
	}

	sealed, err := crypto.SealPrivateKey("correct horse", priv)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	got, err := crypto.OpenPrivateKey("correct horse", sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got != priv {
		t.Fatal("mismatch after open")
	}
}

func TestKeystore_WrongPassphrase_Fails(t *testing.T) {
	sealed, err := crypto.SealPrivateKey("correct", "pem bytes")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := crypto.OpenPrivateKey("wrong", sealed); !errors.Is(err, domain.ErrCrypto) {
		t.Fatalf("expected ErrCrypto with wrong passphrase, got %v", err)
	}
}

func TestKeystore_MalformedBlob_Fails(t *testing.T) {
	if _, err := crypto.OpenPrivateKey("pass", "%%%"); !errors.Is(err, domain.ErrCrypto) {
		t.Fatalf("expected ErrCrypto, got %v", err)
	}
}
