package scorecard

import (
	"errors"
	"fmt"
)

// PontuacaoMaximaTotal é o teto do scorecard: 8 áreas x 5 critérios x 25 pontos
const PontuacaoMaximaTotal = 1000

// PontosPermitidos são os três níveis de um critério: não atende, parcial, atende
var PontosPermitidos = []int{0, 12, 25}

func PontosValidos(p int) bool {
	for _, v := range PontosPermitidos {
		if p == v {
			return true
		}
	}
	return false
}

// Faixa é um intervalo fechado [Min, Max] da pontuação total
type Faixa struct {
	Codigo string `json:"codigo" yaml:"codigo"`
	Nome   string `json:"nome" yaml:"nome"`
	Min    int    `json:"min" yaml:"min"`
	Max    int    `json:"max" yaml:"max"`
	Nivel  int    `json:"nivel" yaml:"-"`
}

// TabelaFaixas é ordenada, sem sobreposição e cobre 0..PontuacaoMaximaTotal
type TabelaFaixas []Faixa

var faixasPadrao = NovaTabelaFaixas([]Faixa{
	{Codigo: "risco_estrutural", Nome: "Risco Estrutural (Alto)", Min: 0, Max: 350},
	{Codigo: "operacao_instavel", Nome: "Operação Instável", Min: 351, Max: 500},
	{Codigo: "estrutura_funcional", Nome: "Estrutura Funcional", Min: 501, Max: 650},
	{Codigo: "estrutura_organizada", Nome: "Estrutura Organizada", Min: 651, Max: 800},
	{Codigo: "gestao_profissional", Nome: "Gestão Profissional", Min: 801, Max: 900},
	{Codigo: "operacao_escalavel", Nome: "Operação Escalável", Min: 901, Max: 1000},
})

// FaixasPadrao devolve uma cópia da tabela de classificação padrão
func FaixasPadrao() TabelaFaixas {
	return NovaTabelaFaixas(faixasPadrao)
}

// NovaTabelaFaixas copia as faixas numerando os níveis na ordem recebida
func NovaTabelaFaixas(faixas []Faixa) TabelaFaixas {
	t := make(TabelaFaixas, len(faixas))
	copy(t, faixas)
	for i := range t {
		t[i].Nivel = i + 1
	}
	return t
}

var ErrTabelaFaixasVazia = errors.New("tabela de faixas vazia")

// Validar garante que as faixas são contíguas e cobrem 0..1000
func (t TabelaFaixas) Validar() error {
	if len(t) == 0 {
		return ErrTabelaFaixasVazia
	}
	codigos := make(map[string]bool, len(t))
	esperado := 0
	for _, f := range t {
		if f.Codigo == "" {
			return fmt.Errorf("faixa %q sem código", f.Nome)
		}
		if codigos[f.Codigo] {
			return fmt.Errorf("faixa %q duplicada", f.Codigo)
		}
		codigos[f.Codigo] = true
		if f.Min != esperado {
			return fmt.Errorf("faixa %q começa em %d, esperado %d", f.Codigo, f.Min, esperado)
		}
		if f.Max < f.Min {
			return fmt.Errorf("faixa %q com max %d menor que min %d", f.Codigo, f.Max, f.Min)
		}
		esperado = f.Max + 1
	}
	if ultimo := t[len(t)-1].Max; ultimo != PontuacaoMaximaTotal {
		return fmt.Errorf("faixas terminam em %d, esperado %d", ultimo, PontuacaoMaximaTotal)
	}
	return nil
}

// Classificar devolve a faixa do total. Valores fora de 0..1000 são
// limitados antes da busca.
func (t TabelaFaixas) Classificar(total int) Faixa {
	total, _ = Limitar(total)
	for _, f := range t {
		if total >= f.Min && total <= f.Max {
			return f
		}
	}
	if len(t) == 0 {
		return Faixa{}
	}
	return t[len(t)-1]
}

// Classificar usa a tabela padrão
func Classificar(total int) Faixa {
	return faixasPadrao.Classificar(total)
}

// Limitar prende o total em 0..PontuacaoMaximaTotal e informa se precisou
func Limitar(total int) (int, bool) {
	switch {
	case total < 0:
		return 0, true
	case total > PontuacaoMaximaTotal:
		return PontuacaoMaximaTotal, true
	default:
		return total, false
	}
}
