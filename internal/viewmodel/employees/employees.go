// Package employees é o view-model da tela de funcionários. Só abre para
// sessões cujo menu contém o item de funcionários.
package employees

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/session"
	"github.com/BruksfildServices01/mv-autocenter/internal/viewmodel"
)

var (
	ErrForbidden       = errors.New("employees view requires a management role")
	ErrNoDialog        = errors.New("no dialog open")
	ErrNothingToDelete = errors.New("no delete requested")
	ErrClosed          = errors.New("view closed")
)

var messages = viewmodel.Messages{
	Conflict: "Este e-mail já está em uso.",
	NotFound: "Funcionário não encontrado. A lista foi atualizada.",
	Generic:  "Não foi possível concluir a operação. Tente novamente.",
}

// Form é o estado do diálogo. Senha em branco na edição mantém a atual.
type Form struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     user.Role
	Active   bool
}

type ViewModel struct {
	repo     user.Repository
	session  *session.State
	notifier viewmodel.Notifier
	log      *slog.Logger

	mu            sync.Mutex
	users         []user.Projection
	term          string
	mode          viewmodel.Mode
	editing       *user.Projection
	form          Form
	loading       bool
	pendingDelete *user.Projection
	closed        bool
}

func New(repo user.Repository, st *session.State, notifier viewmodel.Notifier, log *slog.Logger) *ViewModel {
	if log == nil {
		log = slog.Default()
	}
	return &ViewModel{
		repo:     repo,
		session:  st,
		notifier: notifier,
		log:      log.With(slog.String("view", "employees")),
		users:    []user.Projection{},
		mode:     viewmodel.ModeIdle,
	}
}

// guard é reavaliado a cada operação: o papel pode mudar com logout/login.
func (vm *ViewModel) guard() error {
	vm.mu.Lock()
	closed := vm.closed
	vm.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if !vm.session.Allows(navigation.Employees) {
		return ErrForbidden
	}
	return nil
}

func (vm *ViewModel) begin() func() {
	vm.mu.Lock()
	vm.loading = true
	vm.mu.Unlock()

	return func() {
		vm.mu.Lock()
		vm.loading = false
		vm.mu.Unlock()
	}
}

func (vm *ViewModel) fail(op string, err error) {
	vm.mu.Lock()
	closed := vm.closed
	vm.mu.Unlock()

	if !closed {
		viewmodel.Report(vm.log, vm.notifier, op, err, messages)
	}
}

func (vm *ViewModel) Load(ctx context.Context) error {
	if err := vm.guard(); err != nil {
		return err
	}
	done := vm.begin()
	defer done()

	return vm.reload(ctx)
}

func (vm *ViewModel) reload(ctx context.Context) error {
	list, err := vm.repo.FindAll(ctx)
	if err != nil {
		vm.fail("list users", err)
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed {
		return ErrClosed
	}
	if list == nil {
		list = []user.Projection{}
	}
	vm.users = list
	return nil
}

func (vm *ViewModel) Search(term string) {
	vm.mu.Lock()
	vm.term = term
	vm.mu.Unlock()
}

// Visible filtra por nome ou e-mail, sem diferenciar maiúsculas.
func (vm *ViewModel) Visible() []user.Projection {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(vm.term))
	out := make([]user.Projection, 0, len(vm.users))
	for _, u := range vm.users {
		if term == "" ||
			strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}

func (vm *ViewModel) OpenCreate() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = viewmodel.ModeCreating
	vm.editing = nil
	vm.form = Form{Role: user.RoleFuncionario, Active: true}
}

func (vm *ViewModel) OpenEdit(u user.Projection) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = viewmodel.ModeEditing
	vm.editing = &u
	vm.form = Form{
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Role:   u.Role,
		Active: u.Active,
	}
}

func (vm *ViewModel) SetForm(f Form) {
	vm.mu.Lock()
	vm.form = f
	vm.mu.Unlock()
}

func (vm *ViewModel) Form() Form {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.form
}

func (vm *ViewModel) Mode() viewmodel.Mode {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.mode
}

func (vm *ViewModel) CloseDialog() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = viewmodel.ModeIdle
	vm.editing = nil
	vm.form = Form{}
}

// Submit repassa a senha em texto ao repositório (que gera o hash) e
// a apaga do formulário em qualquer desfecho.
func (vm *ViewModel) Submit(ctx context.Context) error {
	if err := vm.guard(); err != nil {
		return err
	}

	vm.mu.Lock()
	mode, form, editing := vm.mode, vm.form, vm.editing
	vm.form.Password = ""
	vm.mu.Unlock()

	done := vm.begin()
	defer done()

	var err error
	switch mode {
	case viewmodel.ModeCreating:
		_, err = vm.repo.Create(ctx, user.CreateInput{
			Name:     form.Name,
			Email:    form.Email,
			Password: form.Password,
			Phone:    form.Phone,
			Role:     form.Role,
		})
	case viewmodel.ModeEditing:
		_, err = vm.repo.Update(ctx, editing.ID, editPatch(form))
	default:
		return ErrNoDialog
	}

	if err != nil {
		vm.fail("save user", err)
		if httperr.IsNotFound(err) {
			_ = vm.reload(ctx)
		}
		return err
	}

	vm.CloseDialog()
	viewmodel.Success(vm.notifier, "Funcionário salvo com sucesso.")

	// já gravado: erro ao recarregar só é notificado
	_ = vm.reload(ctx)
	return nil
}

func editPatch(f Form) user.Patch {
	name, email, phone, role, active := f.Name, f.Email, f.Phone, f.Role, f.Active
	p := user.Patch{
		Name:   &name,
		Email:  &email,
		Phone:  &phone,
		Role:   &role,
		Active: &active,
	}
	if f.Password != "" {
		pw := f.Password
		p.Password = &pw
	}
	return p
}

func (vm *ViewModel) RequestDelete(u user.Projection) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pendingDelete = &u
}

func (vm *ViewModel) CancelDelete() {
	vm.mu.Lock()
	vm.pendingDelete = nil
	vm.mu.Unlock()
}

func (vm *ViewModel) ConfirmDelete(ctx context.Context) error {
	if err := vm.guard(); err != nil {
		return err
	}

	vm.mu.Lock()
	target := vm.pendingDelete
	vm.pendingDelete = nil
	vm.mu.Unlock()

	if target == nil {
		return ErrNothingToDelete
	}

	done := vm.begin()
	defer done()

	if err := vm.repo.Delete(ctx, target.ID); err != nil {
		vm.fail("delete user", err)
		if httperr.IsNotFound(err) {
			_ = vm.reload(ctx)
		}
		return err
	}

	viewmodel.Success(vm.notifier, "Funcionário excluído.")
	_ = vm.reload(ctx)
	return nil
}

func (vm *ViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()
}
