package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator(tt.secret, tt.expiration)

			if gen == nil {
				t.Fatal("expected generator to be non-nil")
			}
			if string(gen.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(gen.secret))
			}
			if gen.expiration != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, gen.expiration)
			}
		})
	}
}

// TestGenerator_GenerateToken は生成されたJWTトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userID     string
		expiration time.Duration
	}{
		{"guest", "guest", time.Hour},
		{"email-like subject", "user+tag@example.com", time.Hour},
		{"numeric subject", "42", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", tt.expiration)
			tokenStr, err := gen.GenerateToken(tt.userID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if !token.Valid {
				t.Error("expected token to be valid")
			}
			if claims.Subject != tt.userID {
				t.Errorf("expected sub %q, got %q", tt.userID, claims.Subject)
			}
			if claims.ExpiresAt == nil || claims.IssuedAt == nil {
				t.Error("expected exp and iat claims to be set")
			}
		})
	}
}

// TestGenerator_GenerateToken_Expiration はexp・iatクレームが注入した時刻から計算されることを検証します。
func TestGenerator_GenerateToken_Expiration(t *testing.T) {
	t.Parallel()

	fixed := time.Now().Truncate(time.Second)
	gen := NewGenerator("test-secret", 2*time.Hour)
	gen.now = func() time.Time { return fixed }

	tokenStr, err := gen.GenerateToken("guest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if !claims.IssuedAt.Time.Equal(fixed) {
		t.Errorf("expected iat %v, got %v", fixed, claims.IssuedAt.Time)
	}
	if !claims.ExpiresAt.Time.Equal(fixed.Add(2 * time.Hour)) {
		t.Errorf("expected exp %v, got %v", fixed.Add(2*time.Hour), claims.ExpiresAt.Time)
	}
}

// TestGenerator_GenerateToken_Rejects は空のユーザーIDや未設定のシークレットを拒否することを検証します。
func TestGenerator_GenerateToken_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator("test-secret", time.Hour).GenerateToken(""); err == nil {
		t.Error("expected error for empty user id")
	}
	if _, err := NewGenerator("", time.Hour).GenerateToken("guest"); err == nil {
		t.Error("expected error for empty secret")
	}
}
