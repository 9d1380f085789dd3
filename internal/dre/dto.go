package dre

import "github.com/shopspring/decimal"

// DRERequest é usado em PUT /clientes/{id}/dres/{competencia}
type DRERequest struct {
	ReceitaBruta     decimal.Decimal `json:"receitaBruta" validate:"gte=0"`
	Impostos         decimal.Decimal `json:"impostos" validate:"gte=0"`
	CustosVariaveis  decimal.Decimal `json:"custosVariaveis" validate:"gte=0"`
	CustosFixos      decimal.Decimal `json:"custosFixos" validate:"gte=0"`
	QuantidadeVendas *int            `json:"quantidadeVendas" validate:"omitempty,gte=0"`
}

type SimularPrecoRequest struct {
	VariacaoPct decimal.Decimal `json:"variacaoPct" validate:"gt=-100"`
}

type SimularMetaCMVRequest struct {
	MetaPct decimal.Decimal `json:"metaPct" validate:"gte=0,lte=100"`
}

type SimularVendasExtrasRequest struct {
	UnidadesPorDia decimal.Decimal `json:"unidadesPorDia" validate:"gte=0"`
}
