package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/glon/summercourse/internal/app/models"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "summercourse.test",
	})
}

func testUser() *models.User {
	return &models.User{ID: 7, Email: "ana@example.com", Role: models.RoleStudent}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("GenerateTokenPair() returned empty tokens")
	}
	if expiresIn != 3600 || refreshExpiresIn != 86400 {
		t.Errorf("expiries = %d/%d seconds, want 3600/86400", expiresIn, refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 7 || claims.Email != "ana@example.com" || claims.Role != string(models.RoleStudent) {
		t.Errorf("claims = %+v, want user 7 with STUDENT role", claims)
	}
	if claims.Issuer != "summercourse.test" {
		t.Errorf("issuer = %q, want summercourse.test", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	accessToken, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(accessToken); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	accessToken, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	_, err = svc.ValidateToken(accessToken)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want expired token", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	if err != nil || token != "abc123" {
		t.Errorf("ExtractBearerToken() = %q, %v; want abc123", token, err)
	}

	for _, header := range []string{"", "abc123", "Basic abc123"} {
		if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ExtractBearerToken(%q) error = %v, want invalid format", header, err)
		}
	}
}

func TestValidateAndExtractClaims(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	accessToken, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	if err != nil || claims.UserID != 7 {
		t.Errorf("ValidateAndExtractClaims() = %+v, %v; want claims for user 7", claims, err)
	}

	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAndExtractClaims(\"\") error = %v, want invalid token", err)
	}
}
