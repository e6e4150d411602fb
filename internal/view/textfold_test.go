package view

import "testing"

func TestFoldText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Instalação", "instalacao"},
		{"JOÃO", "joao"},
		{"sem acento", "sem acento"},
		{"Configuração de Rede", "configuracao de rede"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := foldText(tt.in); got != tt.want {
			t.Errorf("foldText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
