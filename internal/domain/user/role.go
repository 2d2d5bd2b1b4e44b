package user

// Role é o nível de acesso do usuário. Conjunto canônico de três papéis;
// desenvolvedor é o superusuário.
type Role string

const (
	RoleFuncionario   Role = "funcionario"
	RoleAdministrador Role = "administrador"
	RoleDesenvolvedor Role = "desenvolvedor"
)

var roles = []Role{RoleFuncionario, RoleAdministrador, RoleDesenvolvedor}

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}
