package dre

import "github.com/shopspring/decimal"

var (
	cem    = decimal.NewFromInt(100)
	trinta = decimal.NewFromInt(30)
)

// Indicadores são os valores derivados da DRE, calculados na leitura
type Indicadores struct {
	LucroBruto           decimal.Decimal     `json:"lucroBruto"`
	LucroOperacional     decimal.Decimal     `json:"lucroOperacional"`
	MargemOperacionalPct decimal.NullDecimal `json:"margemOperacionalPct"`
	CMVPct               decimal.NullDecimal `json:"cmvPct"`
	TicketMedio          decimal.NullDecimal `json:"ticketMedio"`
}

func (d *DRE) LucroBruto() decimal.Decimal {
	return d.ReceitaBruta.Sub(d.Impostos).Sub(d.CustosVariaveis)
}

func (d *DRE) LucroOperacional() decimal.Decimal {
	return d.LucroBruto().Sub(d.CustosFixos)
}

// percentualDaReceita devolve v / receita x 100, indefinido sem receita
func (d *DRE) percentualDaReceita(v decimal.Decimal) decimal.NullDecimal {
	if !d.ReceitaBruta.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v.Div(d.ReceitaBruta).Mul(cem))
}

// ticketMedio usa receita / vendas quando o número de vendas é conhecido;
// sem ele, cai na aproximação receita / 30.
func (d *DRE) ticketMedio() (decimal.Decimal, bool) {
	if d.QuantidadeVendas != nil && *d.QuantidadeVendas > 0 {
		return d.ReceitaBruta.Div(decimal.NewFromInt(int64(*d.QuantidadeVendas))), false
	}
	return d.ReceitaBruta.Div(trinta), true
}

// Calcular deriva lucros e percentuais
func (d *DRE) Calcular() Indicadores {
	ind := Indicadores{
		LucroBruto:           d.LucroBruto(),
		LucroOperacional:     d.LucroOperacional(),
		MargemOperacionalPct: arredondar(d.percentualDaReceita(d.LucroOperacional())),
		CMVPct:               arredondar(d.percentualDaReceita(d.CustosVariaveis)),
	}
	if d.QuantidadeVendas != nil && *d.QuantidadeVendas > 0 {
		t, _ := d.ticketMedio()
		ind.TicketMedio = decimal.NewNullDecimal(t.Round(2))
	}
	return ind
}

func arredondar(v decimal.NullDecimal) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return decimal.NewNullDecimal(v.Decimal.Round(2))
}

// DREComIndicadores é a resposta de leitura
type DREComIndicadores struct {
	DRE
	Indicadores Indicadores `json:"indicadores"`
}

func ComIndicadores(d DRE) DREComIndicadores {
	return DREComIndicadores{DRE: d, Indicadores: d.Calcular()}
}
