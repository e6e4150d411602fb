// Package view derives the page view models. Builders are pure functions of
// (chamados state × clientes state × UI selections); they never touch the
// backend, so pages render the same for live and cached data.
package view

import (
	"regexp"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// mesesAbrev holds pt-BR month labels used by filters and charts.
var mesesAbrev = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ChamadoItem is a chamado plus its resolved client label.
type ChamadoItem struct {
	domain.Chamado
	ClienteLabel string `json:"clienteLabel"`
}

func isDataISO(data string) bool {
	return isoDatePattern.MatchString(data)
}
