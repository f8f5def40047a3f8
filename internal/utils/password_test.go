package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("S3cret!motdepasse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash inattendu: %s", hash)
	}

	ok, err := VerifyPassword("S3cret!motdepasse", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("le bon mot de passe doit être accepté")
	}
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("bonmotdepasse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword("mauvaismotdepasse", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("un mauvais mot de passe ne doit jamais passer")
	}
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := HashPassword("identique")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("identique")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("deux hashs du même mot de passe doivent différer (sel aléatoire)")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("peu importe", "pas-un-hash"); err == nil {
		t.Error("un hash malformé doit renvoyer une erreur")
	}
}
