package dre

import "github.com/shopspring/decimal"

// As simulações são projeções sobre uma DRE; nada é gravado.

type SimulacaoPreco struct {
	VariacaoPct   decimal.Decimal     `json:"variacaoPct"`
	ReceitaAtual  decimal.Decimal     `json:"receitaAtual"`
	NovaReceita   decimal.Decimal     `json:"novaReceita"`
	NovosImpostos decimal.Decimal     `json:"novosImpostos"`
	CMVAbsoluto   decimal.Decimal     `json:"cmvAbsoluto"`
	CMVAtualPct   decimal.NullDecimal `json:"cmvAtualPct"`
	NovoCMVPct    decimal.NullDecimal `json:"novoCmvPct"`
	LucroAtual    decimal.Decimal     `json:"lucroAtual"`
	NovoLucro     decimal.Decimal     `json:"novoLucro"`
	DeltaLucro    decimal.Decimal     `json:"deltaLucro"`
}

// SimularPreco aplica uma variação percentual no preço. O custo variável
// (CMV) e os custos fixos ficam constantes. Os impostos incidem sobre a
// receita e são escalados pelo mesmo fator, então
//
//	NovoLucro = NovaReceita - Impostos*fator - CustosVariaveis - CustosFixos
//
// e não apenas NovaReceita - CMV - fixos. Com receita de 100000, impostos
// de 8000, CMV de 32000 e fixos de 40000, +10% dá 110000 - 8800 - 32000 -
// 40000 = 29200. variacaoPct precisa ser maior que -100; o handler recusa
// valores abaixo disso.
func SimularPreco(d DRE, variacaoPct decimal.Decimal) SimulacaoPreco {
	fator := decimal.NewFromInt(1).Add(variacaoPct.Div(cem))
	nova := d
	nova.ReceitaBruta = d.ReceitaBruta.Mul(fator)
	nova.Impostos = d.Impostos.Mul(fator)

	atual := d.LucroOperacional()
	novo := nova.LucroOperacional()
	return SimulacaoPreco{
		VariacaoPct:   variacaoPct,
		ReceitaAtual:  d.ReceitaBruta.Round(2),
		NovaReceita:   nova.ReceitaBruta.Round(2),
		NovosImpostos: nova.Impostos.Round(2),
		CMVAbsoluto:   d.CustosVariaveis.Round(2),
		CMVAtualPct:   arredondar(d.percentualDaReceita(d.CustosVariaveis)),
		NovoCMVPct:    arredondar(nova.percentualDaReceita(d.CustosVariaveis)),
		LucroAtual:    atual.Round(2),
		NovoLucro:     novo.Round(2),
		DeltaLucro:    novo.Sub(atual).Round(2),
	}
}

type SimulacaoMetaCMV struct {
	MetaPct     decimal.Decimal     `json:"metaPct"`
	CMVAtualPct decimal.NullDecimal `json:"cmvAtualPct"`
	CMVAtual    decimal.Decimal     `json:"cmvAtual"`
	NovoCMV     decimal.Decimal     `json:"novoCmv"`
	Economia    decimal.Decimal     `json:"economia"`
	LucroAtual  decimal.Decimal     `json:"lucroAtual"`
	NovoLucro   decimal.Decimal     `json:"novoLucro"`
}

// SimularMetaCMV projeta o lucro se o CMV fosse metaPct da receita
func SimularMetaCMV(d DRE, metaPct decimal.Decimal) SimulacaoMetaCMV {
	novoCMV := d.ReceitaBruta.Mul(metaPct).Div(cem)
	economia := d.CustosVariaveis.Sub(novoCMV)
	atual := d.LucroOperacional()
	return SimulacaoMetaCMV{
		MetaPct:     metaPct,
		CMVAtualPct: arredondar(d.percentualDaReceita(d.CustosVariaveis)),
		CMVAtual:    d.CustosVariaveis.Round(2),
		NovoCMV:     novoCMV.Round(2),
		Economia:    economia.Round(2),
		LucroAtual:  atual.Round(2),
		NovoLucro:   atual.Add(economia).Round(2),
	}
}

type SimulacaoVendasExtras struct {
	UnidadesPorDia decimal.Decimal `json:"unidadesPorDia"`
	TicketMedio    decimal.Decimal `json:"ticketMedio"`
	TicketEstimado bool            `json:"ticketEstimado"`
	ReceitaExtra   decimal.Decimal `json:"receitaExtra"`
	CustoExtra     decimal.Decimal `json:"custoExtra"`
	LucroExtra     decimal.Decimal `json:"lucroExtra"`
	LucroAtual     decimal.Decimal `json:"lucroAtual"`
	NovoLucro      decimal.Decimal `json:"novoLucro"`
}

// SimularVendasExtras projeta unidades a mais por dia num mês de 30 dias.
// O custo extra segue o CMV% atual. TicketEstimado indica que o ticket é a
// aproximação receita / 30 por falta do número de vendas.
func SimularVendasExtras(d DRE, unidadesPorDia decimal.Decimal) SimulacaoVendasExtras {
	ticket, estimado := d.ticketMedio()
	receitaExtra := unidadesPorDia.Mul(ticket).Mul(trinta)

	custoExtra := decimal.Zero
	if pct := d.percentualDaReceita(d.CustosVariaveis); pct.Valid {
		custoExtra = receitaExtra.Mul(pct.Decimal).Div(cem)
	}
	extra := receitaExtra.Sub(custoExtra)
	atual := d.LucroOperacional()
	return SimulacaoVendasExtras{
		UnidadesPorDia: unidadesPorDia,
		TicketMedio:    ticket.Round(2),
		TicketEstimado: estimado,
		ReceitaExtra:   receitaExtra.Round(2),
		CustoExtra:     custoExtra.Round(2),
		LucroExtra:     extra.Round(2),
		LucroAtual:     atual.Round(2),
		NovoLucro:      atual.Add(extra).Round(2),
	}
}
