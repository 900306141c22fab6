package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries exactly one identity kind: a customer (UserID) or a
// shop (ShopID). The unused field stays nil.
type Claims struct {
	UserID *uint  `json:"userId,omitempty"`
	ShopID *uint  `json:"shopId,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsUser() bool { return c.UserID != nil }
func (c *Claims) IsShop() bool { return c.ShopID != nil }

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) SignUser(userID uint, role string) (string, error) {
	return m.sign(&Claims{UserID: &userID, Role: role})
}

func (m *Manager) SignShop(shopID uint, role string) (string, error) {
	return m.sign(&Claims{ShopID: &shopID, Role: role})
}

func (m *Manager) sign(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == nil && claims.ShopID == nil {
		return nil, errors.New("token carries no identity")
	}
	return claims, nil
}
