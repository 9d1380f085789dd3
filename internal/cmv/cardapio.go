package cmv

import "github.com/shopspring/decimal"

const (
	QuadranteEstrela      = "estrela"
	QuadranteVacaLeiteira = "vaca_leiteira"
	QuadranteInterrogacao = "interrogacao"
	QuadranteAbacaxi      = "abacaxi"
)

// Quadrantes na ordem de exibição da matriz
var Quadrantes = []string{QuadranteEstrela, QuadranteVacaLeiteira, QuadranteInterrogacao, QuadranteAbacaxi}

// Regras agrupa os limites de CMV e as recomendações da matriz do cardápio
type Regras struct {
	Limites       LimitesCMV        `json:"limites"`
	Recomendacoes map[string]string `json:"recomendacoes"`
}

func RegrasPadrao() Regras {
	return Regras{
		Limites: LimitesPadrao(),
		Recomendacoes: map[string]string{
			QuadranteEstrela:      "Manter em destaque no cardápio e preservar o padrão de preparo",
			QuadranteVacaLeiteira: "Boa margem e pouca saída: dar visibilidade e sugerir na venda",
			QuadranteInterrogacao: "Vende bem com margem baixa: revisar ficha técnica ou preço",
			QuadranteAbacaxi:      "Margem baixa e pouca saída: considerar retirar do cardápio",
		},
	}
}

// QuadranteDe monta o quadrante a partir dos dois sinais
func QuadranteDe(margemAlta, demandaAlta bool) string {
	switch {
	case margemAlta && demandaAlta:
		return QuadranteEstrela
	case margemAlta:
		return QuadranteVacaLeiteira
	case demandaAlta:
		return QuadranteInterrogacao
	default:
		return QuadranteAbacaxi
	}
}

type ItemCardapio struct {
	Custo
	MargemAlta   bool   `json:"margemAlta"`
	DemandaAlta  bool   `json:"demandaAlta"`
	Quadrante    string `json:"quadrante"`
	Recomendacao string `json:"recomendacao"`
}

type EngenhariaCardapio struct {
	MediaCMVPct decimal.NullDecimal `json:"mediaCmvPct"`
	Itens       []ItemCardapio      `json:"itens"`
	Contagem    map[string]int      `json:"contagem"`
}

// ClassificarCardapio distribui as fichas na matriz margem x demanda.
// A margem é relativa à média do portfólio, então o resultado muda sempre que
// qualquer ficha muda. Fichas sem preço nunca são consideradas de margem alta.
func (r Regras) ClassificarCardapio(custos []Custo) EngenhariaCardapio {
	media := mediaExata(custos)
	e := EngenhariaCardapio{
		MediaCMVPct: mediaCMV(custos),
		Itens:       make([]ItemCardapio, 0, len(custos)),
		Contagem:    make(map[string]int, len(Quadrantes)),
	}
	for _, q := range Quadrantes {
		e.Contagem[q] = 0
	}

	for _, c := range custos {
		pct := c.pctExato()
		margemAlta := media.Valid && pct.Valid && pct.Decimal.LessThan(media.Decimal)
		demandaAlta := NormalizarDemanda(c.Demanda) == DemandaAlta
		q := QuadranteDe(margemAlta, demandaAlta)
		e.Itens = append(e.Itens, ItemCardapio{
			Custo:        c,
			MargemAlta:   margemAlta,
			DemandaAlta:  demandaAlta,
			Quadrante:    q,
			Recomendacao: r.Recomendacoes[q],
		})
		e.Contagem[q]++
	}
	return e
}

// ClassificarCardapio usa as regras padrão
func ClassificarCardapio(custos []Custo) EngenhariaCardapio {
	return RegrasPadrao().ClassificarCardapio(custos)
}
