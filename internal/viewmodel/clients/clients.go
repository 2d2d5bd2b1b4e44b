// Package clients é o view-model da tela de clientes: lista local, busca,
// diálogo de criação/edição e exclusão em duas etapas.
package clients

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/client"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
	"github.com/BruksfildServices01/mv-autocenter/internal/viewmodel"
)

var (
	ErrNoDialog        = errors.New("no dialog open")
	ErrNothingToDelete = errors.New("no delete requested")
	ErrClosed          = errors.New("view closed")
)

var messages = viewmodel.Messages{
	Conflict: "Já existe um cliente com estes dados.",
	NotFound: "Cliente não encontrado. A lista foi atualizada.",
	Generic:  "Não foi possível concluir a operação. Tente novamente.",
}

type ViewModel struct {
	repo     client.Repository
	notifier viewmodel.Notifier
	log      *slog.Logger

	mu            sync.Mutex
	clients       []models.Client
	term          string
	mode          viewmodel.Mode
	editing       *models.Client
	form          client.Input
	loading       bool
	pendingDelete *models.Client
	lastErr       error
	closed        bool
}

func New(repo client.Repository, notifier viewmodel.Notifier, log *slog.Logger) *ViewModel {
	if log == nil {
		log = slog.Default()
	}
	return &ViewModel{
		repo:     repo,
		notifier: notifier,
		log:      log.With(slog.String("view", "clients")),
		clients:  []models.Client{},
		mode:     viewmodel.ModeIdle,
	}
}

// begin marca loading; o retorno deve ser chamado em defer.
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

func (vm *ViewModel) isClosed() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.closed
}

func (vm *ViewModel) fail(op string, err error) error {
	vm.mu.Lock()
	vm.lastErr = err
	closed := vm.closed
	vm.mu.Unlock()

	if !closed {
		viewmodel.Report(vm.log, vm.notifier, op, err, messages)
	}
	return err
}

// Load recarrega a lista inteira do repositório.
func (vm *ViewModel) Load(ctx context.Context) error {
	if vm.isClosed() {
		return ErrClosed
	}
	done := vm.begin()
	defer done()

	return vm.reload(ctx)
}

func (vm *ViewModel) reload(ctx context.Context) error {
	list, err := vm.repo.List(ctx)
	if err != nil {
		return vm.fail("list clients", err)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	// resultado tardio de uma tela já fechada é descartado
	if vm.closed {
		return ErrClosed
	}
	if list == nil {
		list = []models.Client{}
	}
	vm.clients = list
	vm.lastErr = nil
	return nil
}

func (vm *ViewModel) Search(term string) {
	vm.mu.Lock()
	vm.term = term
	vm.mu.Unlock()
}

func (vm *ViewModel) Term() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.term
}

// Visible aplica a busca local sobre a lista carregada.
func (vm *ViewModel) Visible() []models.Client {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return client.Filter(vm.clients, vm.term)
}

func (vm *ViewModel) All() []models.Client {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]models.Client, len(vm.clients))
	copy(out, vm.clients)
	return out
}

func (vm *ViewModel) OpenCreate() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = viewmodel.ModeCreating
	vm.editing = nil
	vm.form = client.Input{}
}

func (vm *ViewModel) OpenEdit(c models.Client) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = viewmodel.ModeEditing
	vm.editing = &c
	vm.form = client.Input{
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Document: c.Document,
		Address:  c.Address,
	}
}

func (vm *ViewModel) SetForm(in client.Input) {
	vm.mu.Lock()
	vm.form = in
	vm.mu.Unlock()
}

func (vm *ViewModel) Form() client.Input {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.form
}

func (vm *ViewModel) Mode() viewmodel.Mode {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.mode
}

// Editing devolve o cliente em edição, se houver.
func (vm *ViewModel) Editing() (models.Client, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.editing == nil {
		return models.Client{}, false
	}
	return *vm.editing, true
}

func (vm *ViewModel) CloseDialog() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.mode = viewmodel.ModeIdle
	vm.editing = nil
	vm.form = client.Input{}
}

// Submit cria ou atualiza conforme o diálogo. Em caso de erro o diálogo
// continua aberto com a entrada preservada; gravado com sucesso, o diálogo
// fecha mesmo que a lista não possa ser recarregada.
func (vm *ViewModel) Submit(ctx context.Context) error {
	if vm.isClosed() {
		return ErrClosed
	}

	vm.mu.Lock()
	mode, form, editing := vm.mode, vm.form, vm.editing
	vm.mu.Unlock()

	done := vm.begin()
	defer done()

	var err error
	switch mode {
	case viewmodel.ModeCreating:
		_, err = vm.repo.Create(ctx, form)
	case viewmodel.ModeEditing:
		_, err = vm.repo.Update(ctx, editing.ID, fullPatch(form))
	default:
		return ErrNoDialog
	}

	if err != nil {
		vm.fail("save client", err)
		if httperr.IsNotFound(err) {
			_ = vm.reload(ctx)
		}
		return err
	}

	vm.CloseDialog()
	if mode == viewmodel.ModeCreating {
		viewmodel.Success(vm.notifier, "Cliente cadastrado com sucesso.")
	} else {
		viewmodel.Success(vm.notifier, "Cliente atualizado com sucesso.")
	}

	// o registro já foi gravado: falha ao recarregar fica só na lista (LastError)
	_ = vm.reload(ctx)
	return nil
}

// fullPatch envia todos os campos do formulário; opcional nil limpa o valor.
func fullPatch(in client.Input) client.Patch {
	name := in.Name
	return client.Patch{
		Name:     &name,
		Email:    orEmpty(in.Email),
		Phone:    orEmpty(in.Phone),
		Document: orEmpty(in.Document),
		Address:  orEmpty(in.Address),
	}
}

func orEmpty(v *string) *string {
	if v == nil {
		empty := ""
		return &empty
	}
	return v
}

// RequestDelete é a primeira etapa; nada é apagado até ConfirmDelete.
func (vm *ViewModel) RequestDelete(c models.Client) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pendingDelete = &c
}

func (vm *ViewModel) PendingDelete() (models.Client, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.pendingDelete == nil {
		return models.Client{}, false
	}
	return *vm.pendingDelete, true
}

func (vm *ViewModel) CancelDelete() {
	vm.mu.Lock()
	vm.pendingDelete = nil
	vm.mu.Unlock()
}

func (vm *ViewModel) ConfirmDelete(ctx context.Context) error {
	if vm.isClosed() {
		return ErrClosed
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
		vm.fail("delete client", err)
		if httperr.IsNotFound(err) {
			_ = vm.reload(ctx)
		}
		return err
	}

	viewmodel.Success(vm.notifier, "Cliente excluído.")
	_ = vm.reload(ctx)
	return nil
}

func (vm *ViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

func (vm *ViewModel) LastError() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastErr
}

// Close desmonta a tela: respostas que chegarem depois são ignoradas.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()
}
