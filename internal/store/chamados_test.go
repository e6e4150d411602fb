package store

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/chamados-dashboard/internal/backend"
	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/events"
	"github.com/spec-kit/chamados-dashboard/internal/observability"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/pkg/util"
)

type chamadoHarness struct {
	provider   *fakeProvider
	session    *SessionStore
	collection *backend.MemoryChamados
	store      *ChamadoStore
}

func newChamadoHarness(t *testing.T) *chamadoHarness {
	t.Helper()
	provider := newFakeProvider()
	session := NewSessionStore(provider)
	collection := backend.NewMemoryChamados()
	store := NewChamadoStore(ChamadoStoreDeps{
		Session:    session,
		Collection: collection,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})
	session.Start()
	store.Start()
	t.Cleanup(store.Stop)
	t.Cleanup(session.Stop)
	return &chamadoHarness{provider: provider, session: session, collection: collection, store: store}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var de *util.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	return de.Code
}

func TestChamadoStoreSameUIDIsNoOp(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))
	h.provider.emit(authenticated("u1"))

	if calls := h.collection.SubscribeCalls(); calls != 1 {
		t.Errorf("SubscribeCalls = %d, want 1", calls)
	}
	if got := h.store.State(); got.Status != domain.DataReady {
		t.Errorf("status = %s, want ready", got.Status)
	}
}

func TestChamadoStoreSessionTransitions(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))

	if _, err := h.store.AddChamadoNovo(context.Background(), NovoChamadoInput{Motivo: "sem rede", ClienteNome: "Padaria Sol", Data: "2024-06-01"}); err != nil {
		t.Fatalf("AddChamadoNovo: %v", err)
	}
	if got := h.store.State(); got.Status != domain.DataReady || len(got.Data) != 1 {
		t.Fatalf("state after add = %+v", got)
	}

	// a loading session keeps the retained data
	h.provider.emit(domain.SessionState{Status: domain.SessionLoading})
	if got := h.store.State(); got.Status != domain.DataLoading || len(got.Data) != 1 {
		t.Errorf("loading state = %+v, want loading with retained data", got)
	}

	// signing out resolves to ready and empty
	h.provider.emit(domain.SessionState{Status: domain.SessionUnauthenticated})
	if got := h.store.State(); got.Status != domain.DataReady || len(got.Data) != 0 {
		t.Errorf("signed-out state = %+v, want ready empty", got)
	}

	// a session error surfaces as an error state with empty data
	h.provider.emit(domain.SessionState{Status: domain.SessionError, Error: "token refresh failed"})
	if got := h.store.State(); got.Status != domain.DataError || got.Error != "token refresh failed" || len(got.Data) != 0 {
		t.Errorf("error state = %+v", got)
	}
}

func TestChamadoStoreSwitchesUser(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))
	if _, err := h.store.AddChamadoNovo(context.Background(), NovoChamadoInput{Motivo: "impressora", ClienteNome: "Padaria Sol", Data: "2024-06-01"}); err != nil {
		t.Fatalf("AddChamadoNovo: %v", err)
	}

	h.provider.emit(authenticated("u2"))
	if calls := h.collection.SubscribeCalls(); calls != 2 {
		t.Errorf("SubscribeCalls = %d, want 2", calls)
	}
	if got := h.store.State(); got.Status != domain.DataReady || len(got.Data) != 0 {
		t.Errorf("u2 state = %+v, want ready empty", got)
	}
}

func TestChamadoStoreFaultIsTerminalForSameIdentity(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))

	h.collection.Fault("u1", errors.New("stream torn down"))
	if got := h.store.State(); got.Status != domain.DataError || got.Error != "stream torn down" {
		t.Fatalf("state after fault = %+v", got)
	}

	// the same identity re-emitting does not reopen the subscription
	h.provider.emit(authenticated("u1"))
	if calls := h.collection.SubscribeCalls(); calls != 1 {
		t.Errorf("SubscribeCalls = %d, want 1", calls)
	}
	if got := h.store.State(); got.Status != domain.DataError {
		t.Errorf("status = %s, want error until identity changes", got.Status)
	}

	// a sign-out and sign-in cycle recovers
	h.provider.emit(domain.SessionState{Status: domain.SessionUnauthenticated})
	h.provider.emit(authenticated("u1"))
	if got := h.store.State(); got.Status != domain.DataReady {
		t.Errorf("status after re-auth = %s, want ready", got.Status)
	}
	if calls := h.collection.SubscribeCalls(); calls != 2 {
		t.Errorf("SubscribeCalls = %d, want 2", calls)
	}
}

func TestChamadoStoreRequiresSession(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(domain.SessionState{Status: domain.SessionUnauthenticated})

	_, err := h.store.AddChamadoNovo(context.Background(), NovoChamadoInput{Motivo: "x", Data: "2024-06-01"})
	if code := errCode(t, err); code != "AUTH_REQUIRED" {
		t.Errorf("code = %s, want AUTH_REQUIRED", code)
	}
}

func TestChamadoStoreValidatesInput(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))
	ctx := context.Background()

	if _, err := h.store.AddChamadoNovo(ctx, NovoChamadoInput{ClienteNome: "x", Data: "2024-06-01"}); errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("missing motivo accepted")
	}
	if _, err := h.store.AddChamadoNovo(ctx, NovoChamadoInput{Motivo: "x", ClienteNome: "x"}); errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("missing data accepted")
	}
	if _, err := h.store.AddChamadoNovo(ctx, NovoChamadoInput{Motivo: "x", Data: "2024-06-01"}); errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("chamado with no client data accepted")
	}
	if _, err := h.store.AddChamadoAntigo(ctx, AntigoChamadoInput{Motivo: "x", ClienteNome: "x", Data: "2024-06-01"}); errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("antigo without resolucao accepted")
	}
	if _, err := h.store.AddChamadoAntigo(ctx, AntigoChamadoInput{Motivo: "x", Data: "2024-06-01", Resolucao: "x"}); errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("antigo with no client data accepted")
	}
	if err := h.store.FinalizarChamado(ctx, "any", "  "); errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("blank resolucao accepted")
	}

	concluido := domain.StatusConcluido
	err := h.store.UpdateChamado(ctx, "any", repository.ChamadoPatch{Status: &concluido})
	if errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("completion without resolucao accepted")
	}

	vazio := ""
	err = h.store.UpdateChamado(ctx, "any", repository.ChamadoPatch{ClienteID: &vazio, ClienteNome: &vazio, Cliente: &vazio})
	if errCode(t, err) != "VALIDATION_FAILED" {
		t.Error("patch clearing every client field accepted")
	}
}

func TestChamadoStoreAntigoIsCreatedCompleted(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))

	chamado, err := h.store.AddChamadoAntigo(context.Background(), AntigoChamadoInput{
		Motivo:      "upgrade de memoria",
		ClienteID:   "c1",
		ClienteNome: "Oficina Central",
		Data:        "2023-11-10",
		Resolucao:   "pente trocado",
	})
	if err != nil {
		t.Fatalf("AddChamadoAntigo: %v", err)
	}
	if chamado.Status != domain.StatusConcluido || chamado.TipoCadastro != domain.TipoAntigo {
		t.Errorf("chamado = %+v, want concluido/antigo", chamado)
	}
	if chamado.CriadoEm == nil || chamado.ConcluidoEm == nil {
		t.Error("instants not stamped")
	}
	// the client reference rides along exactly like the novo path
	if chamado.ClienteID != "c1" || chamado.ClienteNome != "Oficina Central" || chamado.Cliente != "Oficina Central" {
		t.Errorf("client reference = %q/%q/%q", chamado.ClienteID, chamado.ClienteNome, chamado.Cliente)
	}
}

func TestChamadoStoreFinalizarFlow(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))
	ctx := context.Background()

	chamado, err := h.store.AddChamadoNovo(ctx, NovoChamadoInput{Motivo: "hd com ruido", ClienteNome: "Padaria Sol", Data: "2024-06-01"})
	if err != nil {
		t.Fatalf("AddChamadoNovo: %v", err)
	}

	if err := h.store.FinalizarChamado(ctx, chamado.ID, "hd substituido"); err != nil {
		t.Fatalf("FinalizarChamado: %v", err)
	}
	got := h.store.State().Data[0]
	if got.Status != domain.StatusConcluido || got.Resolucao != "hd substituido" || got.ConcluidoEm == nil {
		t.Errorf("completed chamado = %+v", got)
	}

	if err := h.store.FinalizarChamado(ctx, "missing", "x"); errCode(t, err) != "NOT_FOUND" {
		t.Error("unknown id did not map to NOT_FOUND")
	}
}

func TestChamadoStoreWrapsBackendFailures(t *testing.T) {
	h := newChamadoHarness(t)
	h.provider.emit(authenticated("u1"))
	h.collection.FailWrites(errors.New("connection reset"))

	_, err := h.store.AddChamadoNovo(context.Background(), NovoChamadoInput{Motivo: "x", ClienteNome: "x", Data: "2024-06-01"})
	if code := errCode(t, err); code != "BACKEND_WRITE_FAILED" {
		t.Errorf("code = %s, want BACKEND_WRITE_FAILED", code)
	}
}
