package view

import (
	"sort"
	"time"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

// sortChamadosDataDesc orders newest calendar date first. Ties inside a date
// break by descending instant; the open list prefers the creation instant and
// the completed list the completion instant, each falling back to the other.
// Records with no instant sort last within their date group.
func sortChamadosDataDesc(items []domain.Chamado, preferConcluidoEm bool) []domain.Chamado {
	out := append([]domain.Chamado(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Data != out[j].Data {
			return out[i].Data > out[j].Data
		}
		return tieInstant(out[i], preferConcluidoEm) > tieInstant(out[j], preferConcluidoEm)
	})
	return out
}

func tieInstant(c domain.Chamado, preferConcluidoEm bool) int64 {
	if preferConcluidoEm {
		return instantMillis(c.ConcluidoEm, c.CriadoEm)
	}
	return instantMillis(c.CriadoEm, c.ConcluidoEm)
}

func instantMillis(first, second *time.Time) int64 {
	if first != nil {
		return first.UnixMilli()
	}
	if second != nil {
		return second.UnixMilli()
	}
	return 0
}

// sortClientesByNome orders the roster alphabetically, accent-insensitive so
// accented names do not sink below the z block.
func sortClientesByNome(items []domain.Cliente) []domain.Cliente {
	out := append([]domain.Cliente(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return foldText(out[i].Nome) < foldText(out[j].Nome)
	})
	return out
}
