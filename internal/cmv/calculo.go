package cmv

import (
	"github.com/shopspring/decimal"
)

const (
	StatusSaudavel = "saudavel"
	StatusAtencao  = "atencao"
	StatusCritico  = "critico"
	StatusSemPreco = "sem_preco"
)

var (
	cem       = decimal.NewFromInt(100)
	metaCMV30 = decimal.RequireFromString("0.30")
)

// LimitesCMV separa os status: abaixo de Atencao é saudável, a partir de
// Critico é crítico.
type LimitesCMV struct {
	Atencao decimal.Decimal `json:"atencao"`
	Critico decimal.Decimal `json:"critico"`
}

func LimitesPadrao() LimitesCMV {
	return LimitesCMV{
		Atencao: decimal.NewFromInt(28),
		Critico: decimal.NewFromInt(32),
	}
}

// Status classifica um CMV%. CMV indefinido (sem preço) tem status próprio.
func (l LimitesCMV) Status(pct decimal.NullDecimal) string {
	switch {
	case !pct.Valid:
		return StatusSemPreco
	case pct.Decimal.LessThan(l.Atencao):
		return StatusSaudavel
	case pct.Decimal.LessThan(l.Critico):
		return StatusAtencao
	default:
		return StatusCritico
	}
}

// StatusCMV usa os limites padrão (28 / 32)
func StatusCMV(pct decimal.NullDecimal) string {
	return LimitesPadrao().Status(pct)
}

// Custo é o resultado do cálculo de uma ficha técnica
type Custo struct {
	FichaID         uint                `json:"fichaId"`
	Nome            string              `json:"nome"`
	Categoria       string              `json:"categoria"`
	Demanda         string              `json:"demanda"`
	PrecoVenda      decimal.Decimal     `json:"precoVenda"`
	CustoTotal      decimal.Decimal     `json:"custoTotal"`
	CMVPct          decimal.NullDecimal `json:"cmvPct"`
	MargemBruta     decimal.Decimal     `json:"margemBruta"`
	PrecoAlvo30     decimal.NullDecimal `json:"precoAlvo30"`
	Status          string              `json:"status"`
	InsumosAusentes []uint              `json:"insumosAusentes,omitempty"`

	// cmvExato é o CMV% sem arredondamento; status e quadrante usam este valor
	cmvExato decimal.NullDecimal
}

// pctExato devolve o CMV% sem arredondamento, caindo para CMVPct quando o
// Custo não veio de CalcularCusto.
func (c Custo) pctExato() decimal.NullDecimal {
	if c.cmvExato.Valid {
		return c.cmvExato
	}
	return c.CMVPct
}

// CalcularCusto usa as regras padrão
func CalcularCusto(ficha FichaTecnica, itens []ItemFicha, custos map[uint]decimal.Decimal) Custo {
	return RegrasPadrao().CalcularCusto(ficha, itens, custos)
}

// CalcularCusto soma quantidade x custo unitário das linhas da ficha.
// Um insumo sem custo conhecido entra como zero e é listado em InsumosAusentes,
// já que o custo total fica subestimado.
func (r Regras) CalcularCusto(ficha FichaTecnica, itens []ItemFicha, custos map[uint]decimal.Decimal) Custo {
	total := decimal.Zero
	var ausentes []uint
	for _, it := range itens {
		unit, ok := custos[it.InsumoID]
		if !ok {
			ausentes = append(ausentes, it.InsumoID)
			continue
		}
		total = total.Add(it.Quantidade.Mul(unit))
	}

	c := Custo{
		FichaID:         ficha.ID,
		Nome:            ficha.Nome,
		Categoria:       ficha.Categoria,
		Demanda:         NormalizarDemanda(ficha.Demanda),
		PrecoVenda:      ficha.PrecoVenda,
		CustoTotal:      total,
		MargemBruta:     ficha.PrecoVenda.Sub(total),
		InsumosAusentes: ausentes,
	}
	if ficha.PrecoVenda.IsPositive() {
		c.cmvExato = decimal.NewNullDecimal(total.Div(ficha.PrecoVenda).Mul(cem))
		c.CMVPct = decimal.NewNullDecimal(c.cmvExato.Decimal.Round(2))
	}
	if !total.IsZero() {
		c.PrecoAlvo30 = decimal.NewNullDecimal(total.Div(metaCMV30).Round(2))
	}
	c.Status = r.Limites.Status(c.cmvExato)
	return c
}

// PainelCMV resume o portfólio do cliente
type PainelCMV struct {
	Fichas      []Custo             `json:"fichas"`
	CMVMedioPct decimal.NullDecimal `json:"cmvMedioPct"`
	PorStatus   map[string]int      `json:"porStatus"`
}

// ResumirPortfolio calcula a média simples do CMV% das fichas com preço
func ResumirPortfolio(custos []Custo) PainelCMV {
	p := PainelCMV{
		Fichas: custos,
		PorStatus: map[string]int{
			StatusSaudavel: 0,
			StatusAtencao:  0,
			StatusCritico:  0,
			StatusSemPreco: 0,
		},
		CMVMedioPct: mediaCMV(custos),
	}
	for _, c := range custos {
		p.PorStatus[c.Status]++
	}
	return p
}

func mediaCMV(custos []Custo) decimal.NullDecimal {
	m := mediaExata(custos)
	if !m.Valid {
		return m
	}
	return decimal.NewNullDecimal(m.Decimal.Round(2))
}

// mediaExata é a média do CMV% sem arredondamento das fichas com preço
func mediaExata(custos []Custo) decimal.NullDecimal {
	soma := decimal.Zero
	n := 0
	for _, c := range custos {
		if pct := c.pctExato(); pct.Valid {
			soma = soma.Add(pct.Decimal)
			n++
		}
	}
	if n == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(soma.Div(decimal.NewFromInt(int64(n))))
}
