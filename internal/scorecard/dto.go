package scorecard

// PontuacaoRequest é um item de PUT /clientes/{id}/avaliacoes/{aid}/pontuacoes
type PontuacaoRequest struct {
	CriterioID uint `json:"criterioId" validate:"required"`
	Pontos     *int `json:"pontos" validate:"required,oneof=0 12 25"`
}

type SalvarPontuacoesRequest struct {
	Pontuacoes []PontuacaoRequest `json:"pontuacoes" validate:"required,min=1,dive"`
}

// DetalheAvaliacao junta a avaliação, as notas e o resultado por área
type DetalheAvaliacao struct {
	Avaliacao  Avaliacao       `json:"avaliacao"`
	Pontuacoes []Pontuacao     `json:"pontuacoes"`
	Areas      []ResultadoArea `json:"areas"`
	Faixa      Faixa           `json:"faixa"`
}
