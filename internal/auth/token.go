package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid_token")

type Claims struct {
	UserID     string
	SessionKey string
	Role       user.Role
	ExpiresAt  time.Time
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(userID, sessionKey string, role user.Role) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)

	claims := jwt.MapClaims{
		"sub":  userID,
		"sid":  sessionKey,
		"role": string(role),
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok1 := claims["sub"].(string)
	sid, ok2 := claims["sid"].(string)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || sub == "" || sid == "" {
		return nil, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:     sub,
		SessionKey: sid,
		Role:       user.Role(role),
		ExpiresAt:  exp.Time,
	}, nil
}
