package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/travlapes/backend/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:       uuid.New(),
		Username: "annapurna",
		Email:    "annapurna@example.com",
	}
}

// TestTokenPairRoundTrip проверяет выпуск и разбор пары токенов.
func TestTokenPairRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", "travlapes", time.Minute, time.Hour)
	user := testUser()
	refreshID := uuid.New()

	pair, err := manager.NewTokenPair(user, refreshID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	access, err := manager.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("expected valid access token, got %v", err)
	}
	if access.Subject != user.ID.String() {
		t.Fatalf("unexpected subject: %s", access.Subject)
	}
	if access.Username != user.Username {
		t.Fatalf("expected username claim %s, got %s", user.Username, access.Username)
	}

	refresh, err := manager.ParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("expected valid refresh token, got %v", err)
	}
	if refresh.ID != refreshID.String() {
		t.Fatalf("unexpected refresh token id: %s", refresh.ID)
	}
	// Refresh tokens stay minimal.
	if refresh.Username != "" {
		t.Fatalf("expected no username claim in refresh token, got %s", refresh.Username)
	}
}

// TestTokenTypeMismatch проверяет отказ при подмене типа токена.
func TestTokenTypeMismatch(t *testing.T) {
	manager := NewTokenManager("secret", "travlapes", time.Minute, time.Hour)

	pair, err := manager.NewTokenPair(testUser(), uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseAccessToken(pair.RefreshToken); err == nil {
		t.Fatal("expected refresh token to fail access parsing")
	}
	if _, err := manager.ParseRefreshToken(pair.AccessToken); err == nil {
		t.Fatal("expected access token to fail refresh parsing")
	}
}

// TestTokenForeignIssuer проверяет отказ токенам чужого издателя.
func TestTokenForeignIssuer(t *testing.T) {
	manager := NewTokenManager("secret", "travlapes", time.Minute, time.Hour)
	foreign := NewTokenManager("secret", "someone-else", time.Minute, time.Hour)

	pair, err := foreign.NewTokenPair(testUser(), uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected foreign issuer to be rejected")
	}
}
