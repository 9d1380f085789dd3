package relatorio

import (
	"fmt"

	"github.com/HubGAQ/api-gaq/internal/cmv"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	abaResumo = "Resumo"
	abaAreas  = "Áreas"
	abaFichas = "Fichas"
)

// valor converte decimais para número na célula; percentuais indefinidos
// ficam em branco.
func valor(v interface{}) interface{} {
	switch d := v.(type) {
	case decimal.Decimal:
		return d.InexactFloat64()
	case decimal.NullDecimal:
		if !d.Valid {
			return ""
		}
		return d.Decimal.InexactFloat64()
	default:
		return v
	}
}

func escreverLinha(f *excelize.File, aba string, linha int, valores ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, linha)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(valores))
	for i, v := range valores {
		row[i] = valor(v)
	}
	return f.SetSheetRow(aba, cell, &row)
}

func novaPlanilha(primeiraAba string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", primeiraAba); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// PlanilhaAvaliacao gera o relatório de uma avaliação: aba de resumo com a
// pontuação e a classificação, e uma aba com o desempenho por área.
func PlanilhaAvaliacao(a scorecard.Avaliacao, res scorecard.Resultado) (*excelize.File, error) {
	f, err := novaPlanilha(abaResumo)
	if err != nil {
		return nil, err
	}

	resumo := [][]interface{}{
		{"Avaliação", a.ID},
		{"Cliente", a.ClienteID},
		{"Data", a.Data.Format("02/01/2006")},
		{"Status", a.Status},
		{"Pontuação", res.Total},
		{"Máximo", scorecard.PontuacaoMaximaTotal},
		{"Classificação", res.Faixa.Nome},
	}
	for i, l := range resumo {
		if err := escreverLinha(f, abaResumo, i+1, l...); err != nil {
			f.Close()
			return nil, err
		}
	}

	if _, err := f.NewSheet(abaAreas); err != nil {
		f.Close()
		return nil, err
	}
	if err := escreverLinha(f, abaAreas, 1, "Área", "Pontos", "Máximo", "%"); err != nil {
		f.Close()
		return nil, err
	}
	for i, ar := range res.Areas {
		if err := escreverLinha(f, abaAreas, i+2, ar.Nome, ar.Pontos, ar.PontuacaoMaxima, ar.Percentual); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// PlanilhaFichas gera o painel de custos das fichas técnicas com o quadrante
// de engenharia de cardápio de cada prato.
func PlanilhaFichas(eng cmv.EngenhariaCardapio) (*excelize.File, error) {
	f, err := novaPlanilha(abaFichas)
	if err != nil {
		return nil, err
	}
	cabecalho := []interface{}{"Ficha", "Categoria", "Preço de venda", "Custo", "CMV %", "Margem", "Preço alvo 30%", "Status", "Demanda", "Quadrante"}
	if err := escreverLinha(f, abaFichas, 1, cabecalho...); err != nil {
		f.Close()
		return nil, err
	}
	for i, it := range eng.Itens {
		err := escreverLinha(f, abaFichas, i+2,
			it.Nome, it.Categoria, it.PrecoVenda, it.CustoTotal, it.CMVPct,
			it.MargemBruta, it.PrecoAlvo30, it.Status, it.Demanda, it.Quadrante)
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	ultima := len(eng.Itens) + 3
	if err := escreverLinha(f, abaFichas, ultima, "CMV médio %", eng.MediaCMVPct); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func nomeArquivo(prefixo string, clienteID, id uint) string {
	if id == 0 {
		return fmt.Sprintf("%s-cliente-%d.xlsx", prefixo, clienteID)
	}
	return fmt.Sprintf("%s-cliente-%d-%d.xlsx", prefixo, clienteID, id)
}
