package usuario

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type CriarUsuarioRequest struct {
	Nome      string `json:"nome" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Telefone  string `json:"telefone" validate:"max=20"`
	Senha     string `json:"senha" validate:"omitempty,min=8"`
	Papel     string `json:"papel" validate:"required,oneof=admin cliente"`
	ClienteID *uint  `json:"clienteId" validate:"required_if=Papel cliente"`
}

type AtualizarUsuarioRequest struct {
	Nome     string `json:"nome" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Telefone string `json:"telefone" validate:"max=20"`
	Senha    string `json:"senha" validate:"omitempty,min=8"`
}

// CriarUsuarioResponse devolve a senha temporária quando ela foi gerada
type CriarUsuarioResponse struct {
	Usuario         Usuario `json:"usuario"`
	SenhaTemporaria string  `json:"senhaTemporaria,omitempty"`
}
