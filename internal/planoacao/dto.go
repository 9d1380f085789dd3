package planoacao

import "time"

// PlanoRequest é usado em POST/PUT /clientes/{id}/planos-acao
type PlanoRequest struct {
	AvaliacaoID *uint      `json:"avaliacaoId"`
	CriterioID  *uint      `json:"criterioId"`
	Titulo      string     `json:"titulo" validate:"required,max=150"`
	Descricao   string     `json:"descricao"`
	Responsavel string     `json:"responsavel" validate:"omitempty,max=100"`
	Prazo       *time.Time `json:"prazo"`
}

// StatusRequest é usado em PATCH /clientes/{id}/planos-acao/{pid}/status
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Pendente' 'Em andamento' 'Concluída' 'Cancelada'"`
}

func (req PlanoRequest) aplicar(p *PlanoAcao) {
	p.AvaliacaoID = req.AvaliacaoID
	p.CriterioID = req.CriterioID
	p.Titulo = req.Titulo
	p.Descricao = req.Descricao
	p.Responsavel = req.Responsavel
	p.Prazo = req.Prazo
}
