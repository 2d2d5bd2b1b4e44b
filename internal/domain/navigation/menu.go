// Package navigation deriva o menu visível a partir do papel do usuário.
// A mesma derivação controla o acesso às rotas da API.
package navigation

import "github.com/BruksfildServices01/mv-autocenter/internal/domain/user"

type ItemID string

const (
	Dashboard  ItemID = "dashboard"
	Schedule   ItemID = "schedule"
	Clients    ItemID = "clients"
	Stock      ItemID = "stock"
	NewService ItemID = "new-service"
	Reports    ItemID = "reports"
	Employees  ItemID = "employees"
	Settings   ItemID = "settings"
)

type MenuItem struct {
	ID    ItemID `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

var (
	baseItems = []MenuItem{
		{ID: Dashboard, Title: "Dashboard", Path: "/dashboard"},
		{ID: Schedule, Title: "Agenda", Path: "/dashboard/schedule"},
		{ID: Clients, Title: "Clientes", Path: "/dashboard/clients"},
		{ID: Stock, Title: "Estoque", Path: "/dashboard/stock"},
		{ID: NewService, Title: "Novo Serviço", Path: "/dashboard/new-service"},
	}
	managementItems = []MenuItem{
		{ID: Reports, Title: "Relatórios", Path: "/dashboard/reports"},
		{ID: Employees, Title: "Funcionários", Path: "/dashboard/employees"},
	}
	developerItems = []MenuItem{
		{ID: Settings, Title: "Configurações", Path: "/dashboard/settings"},
	}
)

// MenuFor é pura: sempre monta uma lista nova. Papel desconhecido recebe só o menu base.
func MenuFor(role user.Role) []MenuItem {
	items := make([]MenuItem, 0, len(baseItems)+len(managementItems)+len(developerItems))
	items = append(items, baseItems...)

	if role == user.RoleAdministrador || role == user.RoleDesenvolvedor {
		items = append(items, managementItems...)
	}
	if role == user.RoleDesenvolvedor {
		items = append(items, developerItems...)
	}
	return items
}

func Allows(role user.Role, id ItemID) bool {
	for _, item := range MenuFor(role) {
		if item.ID == id {
			return true
		}
	}
	return false
}
