package view

import (
	"testing"
	"time"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

func instant(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestSortChamadosDataDesc(t *testing.T) {
	items := []domain.Chamado{
		{ID: "a", Data: "2024-01-01"},
		{ID: "b", Data: "2024-03-15"},
		{ID: "c", Data: "2024-02-10"},
	}

	got := sortChamadosDataDesc(items, false)
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}

	// input untouched
	if items[0].ID != "a" {
		t.Error("sort mutated its input")
	}
}

func TestSortChamadosTieBreaking(t *testing.T) {
	early := instant("2024-05-01T08:00:00Z")
	late := instant("2024-05-01T17:00:00Z")

	tests := []struct {
		name              string
		preferConcluidoEm bool
		items             []domain.Chamado
		want              []string
	}{
		{
			name:              "open list prefers criadoEm",
			preferConcluidoEm: false,
			items: []domain.Chamado{
				{ID: "a", Data: "2024-05-01", CriadoEm: early},
				{ID: "b", Data: "2024-05-01", CriadoEm: late},
			},
			want: []string{"b", "a"},
		},
		{
			name:              "completed list prefers concluidoEm",
			preferConcluidoEm: true,
			items: []domain.Chamado{
				{ID: "a", Data: "2024-05-01", CriadoEm: late, ConcluidoEm: early},
				{ID: "b", Data: "2024-05-01", CriadoEm: early, ConcluidoEm: late},
			},
			want: []string{"b", "a"},
		},
		{
			name:              "falls back to the other instant",
			preferConcluidoEm: true,
			items: []domain.Chamado{
				{ID: "a", Data: "2024-05-01", CriadoEm: early},
				{ID: "b", Data: "2024-05-01", CriadoEm: late},
			},
			want: []string{"b", "a"},
		},
		{
			name:              "missing instants sort last in the tie group",
			preferConcluidoEm: false,
			items: []domain.Chamado{
				{ID: "a", Data: "2024-05-01"},
				{ID: "b", Data: "2024-05-01", CriadoEm: early},
			},
			want: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortChamadosDataDesc(tt.items, tt.preferConcluidoEm)
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSortClientesByNome(t *testing.T) {
	got := sortClientesByNome([]domain.Cliente{
		{Nome: "Carlos"}, {Nome: "Álvaro"}, {Nome: "Bruno"},
	})
	want := []string{"Álvaro", "Bruno", "Carlos"}
	for i, nome := range want {
		if got[i].Nome != nome {
			t.Fatalf("position %d = %s, want %s", i, got[i].Nome, nome)
		}
	}
}
