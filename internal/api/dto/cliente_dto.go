package dto

// CriarClienteRequest is the client registration form.
type CriarClienteRequest struct {
	Nome       string `json:"nome"`
	Telefone   string `json:"telefone"`
	Email      string `json:"email"`
	Observacao string `json:"observacao"`
}

// AtualizarClienteRequest is a partial edit; absent fields stay untouched.
type AtualizarClienteRequest struct {
	Nome       *string `json:"nome"`
	Telefone   *string `json:"telefone"`
	Email      *string `json:"email"`
	Observacao *string `json:"observacao"`
}
