package navigation

import (
	"testing"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
)

func itemIDs(items []MenuItem) []ItemID {
	out := make([]ItemID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func contains(items []MenuItem, id ItemID) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func TestMenuFor_Funcionario(t *testing.T) {
	menu := MenuFor(user.RoleFuncionario)

	want := []ItemID{Dashboard, Schedule, Clients, Stock, NewService}
	got := itemIDs(menu)
	if len(got) != len(want) {
		t.Fatalf("menu = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("menu = %v, want %v", got, want)
		}
	}
	for _, id := range []ItemID{Reports, Employees, Settings} {
		if contains(menu, id) {
			t.Errorf("funcionario must not see %q", id)
		}
	}
}

func TestMenuFor_Administrador(t *testing.T) {
	menu := MenuFor(user.RoleAdministrador)

	if !contains(menu, Reports) || !contains(menu, Employees) {
		t.Errorf("administrador menu = %v, missing reports/employees", itemIDs(menu))
	}
	if contains(menu, Settings) {
		t.Error("administrador must not see settings")
	}
}

func TestMenuFor_Desenvolvedor(t *testing.T) {
	menu := MenuFor(user.RoleDesenvolvedor)

	for _, id := range []ItemID{Reports, Employees, Settings} {
		if !contains(menu, id) {
			t.Errorf("desenvolvedor menu missing %q", id)
		}
	}
	if got := len(menu); got != 8 {
		t.Errorf("len(menu) = %d, want 8", got)
	}
	if menu[len(menu)-1].ID != Settings {
		t.Errorf("settings should be last, got %q", menu[len(menu)-1].ID)
	}
}

func TestMenuFor_UnknownRoleGetsBase(t *testing.T) {
	if got := len(MenuFor("owner")); got != 5 {
		t.Errorf("len(menu) = %d, want 5", got)
	}
}

func TestMenuFor_IsPure(t *testing.T) {
	a := MenuFor(user.RoleDesenvolvedor)
	a[0].Title = "mutated"

	b := MenuFor(user.RoleDesenvolvedor)
	if b[0].Title != "Dashboard" {
		t.Error("mutating a returned menu leaked into later calls")
	}
}

func TestAllows(t *testing.T) {
	tests := []struct {
		role user.Role
		id   ItemID
		want bool
	}{
		{user.RoleFuncionario, Clients, true},
		{user.RoleFuncionario, Employees, false},
		{user.RoleAdministrador, Employees, true},
		{user.RoleAdministrador, Settings, false},
		{user.RoleDesenvolvedor, Settings, true},
		{"", Dashboard, true},
		{"", Reports, false},
	}
	for _, tt := range tests {
		if got := Allows(tt.role, tt.id); got != tt.want {
			t.Errorf("Allows(%q, %q) = %v, want %v", tt.role, tt.id, got, tt.want)
		}
	}
}
