package cliente

// ClienteRequest é usado em POST /clientes e PUT /clientes/{id}
type ClienteRequest struct {
	Nome        string `json:"nome" validate:"required,max=150"`
	CNPJ        string `json:"cnpj" validate:"required,min=14,max=18"`
	Segmento    string `json:"segmento" validate:"omitempty,max=60"`
	Cidade      string `json:"cidade" validate:"omitempty,max=100"`
	Responsavel string `json:"responsavel" validate:"omitempty,max=100"`
	Ativo       *bool  `json:"ativo,omitempty"`
}

func (req ClienteRequest) aplicar(c *Cliente) {
	c.Nome = req.Nome
	c.CNPJ = req.CNPJ
	c.Segmento = req.Segmento
	c.Cidade = req.Cidade
	c.Responsavel = req.Responsavel
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
}
