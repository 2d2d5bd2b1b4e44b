// Package session guarda a identidade autenticada e o seu armazenamento persistente.
package session

import (
	"encoding/json"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// Identity é derivada do usuário no login e sempre substituída por inteiro.
type Identity struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

func FromUser(u *models.User) Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  user.Role(u.Role),
	}
}

func (i Identity) Valid() bool {
	return i.ID != "" && i.Role.Valid()
}

func encode(i Identity) ([]byte, error) {
	return json.Marshal(i)
}

// decode trata JSON malformado ou papel desconhecido como ausência.
func decode(data []byte) (Identity, bool) {
	var i Identity
	if err := json.Unmarshal(data, &i); err != nil {
		return Identity{}, false
	}
	if !i.Valid() {
		return Identity{}, false
	}
	return i, true
}
