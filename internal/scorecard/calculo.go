package scorecard

import (
	"sort"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var cem = decimal.NewFromInt(100)

// ResultadoArea é a pontuação de uma área e o percentual do seu máximo
type ResultadoArea struct {
	AreaID          uint                `json:"areaId"`
	Codigo          string              `json:"codigo"`
	Nome            string              `json:"nome"`
	Pontos          int                 `json:"pontos"`
	PontuacaoMaxima int                 `json:"pontuacaoMaxima"`
	Percentual      decimal.NullDecimal `json:"percentual"`
}

// Resultado é o resumo de uma avaliação. É uma prévia calculada a partir das
// notas; o valor gravado na avaliação vem do recálculo feito ao finalizar.
type Resultado struct {
	Total                  int             `json:"total"`
	TotalBruto             int             `json:"totalBruto"`
	ForaDaFaixa            bool            `json:"foraDaFaixa"`
	Faixa                  Faixa           `json:"faixa"`
	Areas                  []ResultadoArea `json:"areas"`
	CriteriosDesconhecidos []uint          `json:"criteriosDesconhecidos,omitempty"`
}

func CalcularTotal(pontuacoes []Pontuacao) int {
	total := 0
	for _, p := range pontuacoes {
		total += p.Pontos
	}
	return total
}

// CalcularPorArea soma as notas por área, na ordem do catálogo
func CalcularPorArea(areas []Area, criterios []Criterio, pontuacoes []Pontuacao) []ResultadoArea {
	areaDoCriterio := make(map[uint]uint, len(criterios))
	for _, c := range criterios {
		areaDoCriterio[c.ID] = c.AreaID
	}
	pontosPorArea := make(map[uint]int, len(areas))
	for _, p := range pontuacoes {
		if areaID, ok := areaDoCriterio[p.CriterioID]; ok {
			pontosPorArea[areaID] += p.Pontos
		}
	}

	ordenadas := make([]Area, len(areas))
	copy(ordenadas, areas)
	sort.SliceStable(ordenadas, func(i, j int) bool { return ordenadas[i].Ordem < ordenadas[j].Ordem })

	out := make([]ResultadoArea, 0, len(ordenadas))
	for _, a := range ordenadas {
		ra := ResultadoArea{
			AreaID:          a.ID,
			Codigo:          a.Codigo,
			Nome:            a.Nome,
			Pontos:          pontosPorArea[a.ID],
			PontuacaoMaxima: a.PontuacaoMaxima,
		}
		if a.PontuacaoMaxima > 0 {
			ra.Percentual = decimal.NewNullDecimal(
				decimal.NewFromInt(int64(ra.Pontos)).Mul(cem).Div(decimal.NewFromInt(int64(a.PontuacaoMaxima))).Round(2))
		}
		out = append(out, ra)
	}
	return out
}

// CriteriosDe achata os critérios pré-carregados nas áreas
func CriteriosDe(areas []Area) []Criterio {
	var out []Criterio
	for _, a := range areas {
		out = append(out, a.Criterios...)
	}
	return out
}

// Resumir calcula total, áreas e faixa. Um total fora de 0..1000 indica notas
// inconsistentes com o catálogo: é limitado, marcado e registrado no log.
func (t TabelaFaixas) Resumir(areas []Area, criterios []Criterio, pontuacoes []Pontuacao) Resultado {
	bruto := CalcularTotal(pontuacoes)
	total, fora := Limitar(bruto)
	if fora {
		config.GetLogger().WithFields(logrus.Fields{
			"module":     "scorecard",
			"funcName":   "Resumir",
			"totalBruto": bruto,
		}).Warn("pontuação total fora de 0..1000, valor limitado")
	}

	res := Resultado{
		Total:       total,
		TotalBruto:  bruto,
		ForaDaFaixa: fora,
		Faixa:       t.Classificar(total),
		Areas:       CalcularPorArea(areas, criterios, pontuacoes),
	}

	conhecidos := make(map[uint]bool, len(criterios))
	for _, c := range criterios {
		conhecidos[c.ID] = true
	}
	for _, p := range pontuacoes {
		if !conhecidos[p.CriterioID] {
			res.CriteriosDesconhecidos = append(res.CriteriosDesconhecidos, p.CriterioID)
		}
	}
	return res
}
