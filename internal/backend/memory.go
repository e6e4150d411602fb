package backend

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
)

// In-memory collections with the same snapshot contract as the Postgres
// backend. Used by tests and by local runs without a database; mutations fan
// snapshots out to listeners synchronously.

type chamadoListener struct {
	onSnapshot SnapshotFunc[domain.Chamado]
	onFault    FaultFunc
}

// MemoryChamados is an in-memory ChamadoCollection.
type MemoryChamados struct {
	mu             sync.Mutex
	seq            int
	byUser         map[string][]domain.Chamado
	listeners      map[string]map[int]chamadoListener
	writeErr       error
	subscribeCalls int
}

// NewMemoryChamados builds an empty collection.
func NewMemoryChamados() *MemoryChamados {
	return &MemoryChamados{
		byUser:    make(map[string][]domain.Chamado),
		listeners: make(map[string]map[int]chamadoListener),
	}
}

// SubscribeCalls reports how many subscriptions were opened.
func (m *MemoryChamados) SubscribeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribeCalls
}

// FailWrites makes every subsequent mutation return err (nil restores).
func (m *MemoryChamados) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Fault delivers a subscription fault to all of uid's listeners.
func (m *MemoryChamados) Fault(uid string, err error) {
	m.mu.Lock()
	faults := make([]FaultFunc, 0, len(m.listeners[uid]))
	for _, l := range m.listeners[uid] {
		faults = append(faults, l.onFault)
	}
	m.mu.Unlock()
	for _, fn := range faults {
		fn(err)
	}
}

func (m *MemoryChamados) Subscribe(_ context.Context, uid string, onSnapshot SnapshotFunc[domain.Chamado], onFault FaultFunc) func() {
	m.mu.Lock()
	m.subscribeCalls++
	m.seq++
	key := m.seq
	if m.listeners[uid] == nil {
		m.listeners[uid] = make(map[int]chamadoListener)
	}
	m.listeners[uid][key] = chamadoListener{onSnapshot: onSnapshot, onFault: onFault}
	snapshot := cloneChamados(m.byUser[uid])
	m.mu.Unlock()

	onSnapshot(snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners[uid], key)
			m.mu.Unlock()
		})
	}
}

func (m *MemoryChamados) Add(_ context.Context, uid string, chamado *domain.Chamado) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	now := time.Now()
	chamado.ID = uuid.NewString()
	chamado.CriadoEm = &now
	if chamado.Status == domain.StatusConcluido {
		chamado.ConcluidoEm = &now
	}
	m.byUser[uid] = append(m.byUser[uid], *chamado)
	m.mu.Unlock()

	m.broadcast(uid)
	return nil
}

func (m *MemoryChamados) Update(_ context.Context, uid, id string, patch repository.ChamadoPatch) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	items := m.byUser[uid]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if patch.Motivo != nil {
			items[i].Motivo = *patch.Motivo
		}
		if patch.Descricao != nil {
			items[i].Descricao = *patch.Descricao
		}
		if patch.Cliente != nil {
			items[i].Cliente = *patch.Cliente
		}
		if patch.ClienteID != nil {
			items[i].ClienteID = *patch.ClienteID
		}
		if patch.ClienteNome != nil {
			items[i].ClienteNome = *patch.ClienteNome
		}
		if patch.Data != nil {
			items[i].Data = *patch.Data
		}
		if patch.Status != nil {
			items[i].Status = *patch.Status
		}
		if patch.Resolucao != nil {
			items[i].Resolucao = *patch.Resolucao
		}
		m.mu.Unlock()
		m.broadcast(uid)
		return nil
	}
	m.mu.Unlock()
	return ErrNotFound
}

func (m *MemoryChamados) Complete(_ context.Context, uid, id, resolucao string) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	items := m.byUser[uid]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		now := time.Now()
		items[i].Status = domain.StatusConcluido
		items[i].Resolucao = resolucao
		items[i].ConcluidoEm = &now
		m.mu.Unlock()
		m.broadcast(uid)
		return nil
	}
	m.mu.Unlock()
	return ErrNotFound
}

func (m *MemoryChamados) Delete(_ context.Context, uid, id string) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	items := m.byUser[uid]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		m.byUser[uid] = append(items[:i:i], items[i+1:]...)
		m.mu.Unlock()
		m.broadcast(uid)
		return nil
	}
	m.mu.Unlock()
	return ErrNotFound
}

func (m *MemoryChamados) broadcast(uid string) {
	m.mu.Lock()
	snapshot := cloneChamados(m.byUser[uid])
	fns := make([]SnapshotFunc[domain.Chamado], 0, len(m.listeners[uid]))
	for _, l := range m.listeners[uid] {
		fns = append(fns, l.onSnapshot)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(cloneChamados(snapshot))
	}
}

func cloneChamados(items []domain.Chamado) []domain.Chamado {
	out := make([]domain.Chamado, len(items))
	copy(out, items)
	return out
}

type clienteListener struct {
	onSnapshot SnapshotFunc[domain.Cliente]
	onFault    FaultFunc
}

// MemoryClientes is an in-memory ClienteCollection.
type MemoryClientes struct {
	mu             sync.Mutex
	seq            int
	byUser         map[string][]domain.Cliente
	listeners      map[string]map[int]clienteListener
	writeErr       error
	subscribeCalls int
}

// NewMemoryClientes builds an empty collection.
func NewMemoryClientes() *MemoryClientes {
	return &MemoryClientes{
		byUser:    make(map[string][]domain.Cliente),
		listeners: make(map[string]map[int]clienteListener),
	}
}

// SubscribeCalls reports how many subscriptions were opened.
func (m *MemoryClientes) SubscribeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribeCalls
}

// FailWrites makes every subsequent mutation return err (nil restores).
func (m *MemoryClientes) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Fault delivers a subscription fault to all of uid's listeners.
func (m *MemoryClientes) Fault(uid string, err error) {
	m.mu.Lock()
	faults := make([]FaultFunc, 0, len(m.listeners[uid]))
	for _, l := range m.listeners[uid] {
		faults = append(faults, l.onFault)
	}
	m.mu.Unlock()
	for _, fn := range faults {
		fn(err)
	}
}

func (m *MemoryClientes) Subscribe(_ context.Context, uid string, onSnapshot SnapshotFunc[domain.Cliente], onFault FaultFunc) func() {
	m.mu.Lock()
	m.subscribeCalls++
	m.seq++
	key := m.seq
	if m.listeners[uid] == nil {
		m.listeners[uid] = make(map[int]clienteListener)
	}
	m.listeners[uid][key] = clienteListener{onSnapshot: onSnapshot, onFault: onFault}
	snapshot := cloneClientes(m.byUser[uid])
	m.mu.Unlock()

	onSnapshot(snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners[uid], key)
			m.mu.Unlock()
		})
	}
}

func (m *MemoryClientes) Add(_ context.Context, uid string, cliente *domain.Cliente) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	now := time.Now()
	cliente.ID = uuid.NewString()
	cliente.Ativo = true
	cliente.CriadoEm = &now
	cliente.AtualizadoEm = &now
	m.byUser[uid] = append(m.byUser[uid], *cliente)
	m.mu.Unlock()

	m.broadcast(uid)
	return nil
}

func (m *MemoryClientes) Update(_ context.Context, uid, id string, patch repository.ClientePatch) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	items := m.byUser[uid]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if patch.Nome != nil {
			items[i].Nome = *patch.Nome
		}
		if patch.Telefone != nil {
			items[i].Telefone = *patch.Telefone
		}
		if patch.Email != nil {
			items[i].Email = *patch.Email
		}
		if patch.Observacao != nil {
			items[i].Observacao = *patch.Observacao
		}
		now := time.Now()
		items[i].AtualizadoEm = &now
		m.mu.Unlock()
		m.broadcast(uid)
		return nil
	}
	m.mu.Unlock()
	return ErrNotFound
}

func (m *MemoryClientes) Delete(_ context.Context, uid, id string) error {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	items := m.byUser[uid]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		m.byUser[uid] = append(items[:i:i], items[i+1:]...)
		m.mu.Unlock()
		m.broadcast(uid)
		return nil
	}
	m.mu.Unlock()
	return ErrNotFound
}

func (m *MemoryClientes) broadcast(uid string) {
	m.mu.Lock()
	snapshot := cloneClientes(m.byUser[uid])
	fns := make([]SnapshotFunc[domain.Cliente], 0, len(m.listeners[uid]))
	for _, l := range m.listeners[uid] {
		fns = append(fns, l.onSnapshot)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(cloneClientes(snapshot))
	}
}

func cloneClientes(items []domain.Cliente) []domain.Cliente {
	out := make([]domain.Cliente, len(items))
	copy(out, items)
	return out
}
