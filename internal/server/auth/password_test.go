package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals plain password")
	}

	if !CheckPasswordHash("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	t.Parallel()

	if CheckPasswordHash("anything", "not-a-bcrypt-hash") {
		t.Fatal("invalid hash accepted")
	}
}
