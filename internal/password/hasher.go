// Package password isola o hash adaptativo de senhas (bcrypt).
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", httperr.Validation("password", "must be at most 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (b *Bcrypt) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
