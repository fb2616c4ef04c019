package auth

import "testing"

// TestPasswordRoundTrip проверяет хэширование и проверку пароля.
func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := VerifyPassword(hash, "correct horse battery"); err != nil {
		t.Fatalf("expected password to verify, got %v", err)
	}

	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
}

// TestRefreshTokenHash проверяет хэширование и сравнение refresh-токена.
func TestRefreshTokenHash(t *testing.T) {
	hash := HashRefreshToken("some-refresh-token")

	// SHA-256 in hex.
	if len(hash) != 64 {
		t.Fatalf("expected 64-char hash, got %d", len(hash))
	}

	if !VerifyRefreshToken(hash, "some-refresh-token") {
		t.Fatal("expected token to match its hash")
	}
	if VerifyRefreshToken(hash, "another-token") {
		t.Fatal("expected mismatched token to fail")
	}
}
