package token

import (
	"testing"
	"time"
)

func TestManager_UserTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.SignUser(42, "User")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.IsUser() || claims.IsShop() {
		t.Fatalf("expected user identity, got %+v", claims)
	}
	if *claims.UserID != 42 {
		t.Errorf("expected userId 42, got %d", *claims.UserID)
	}
	if claims.Role != "User" {
		t.Errorf("expected role User, got %q", claims.Role)
	}
}

func TestManager_ShopTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.SignShop(7, "Admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.IsShop() || claims.IsUser() {
		t.Fatalf("expected shop identity, got %+v", claims)
	}
	if *claims.ShopID != 7 {
		t.Errorf("expected shopId 7, got %d", *claims.ShopID)
	}
	if claims.Role != "Admin" {
		t.Errorf("expected role Admin, got %q", claims.Role)
	}
}

func TestManager_WrongSecretRejected(t *testing.T) {
	signed, err := NewManager("secret-a", time.Hour).SignUser(1, "User")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Parse(signed); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestManager_ExpiredTokenRejected(t *testing.T) {
	signed, err := NewManager("secret", -time.Minute).SignUser(1, "User")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewManager("secret", -time.Minute).Parse(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}
