// Package regras concentra as tabelas de negócio: faixas do scorecard,
// limites de CMV e recomendações da matriz do cardápio.
package regras

import (
	"errors"
	"fmt"
	"os"

	"github.com/HubGAQ/api-gaq/internal/cmv"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Regras struct {
	Faixas scorecard.TabelaFaixas
	CMV    cmv.Regras
}

func Padrao() *Regras {
	return &Regras{
		Faixas: scorecard.FaixasPadrao(),
		CMV:    cmv.RegrasPadrao(),
	}
}

// arquivo é o formato do YAML; tudo é opcional e o que faltar fica no padrão
type arquivo struct {
	Faixas []scorecard.Faixa `yaml:"faixas"`
	CMV    *struct {
		Atencao *float64 `yaml:"atencao"`
		Critico *float64 `yaml:"critico"`
	} `yaml:"cmv"`
	Recomendacoes map[string]string `yaml:"recomendacoes"`
}

// Carregar lê o arquivo de regras. Caminho vazio devolve as regras padrão.
func Carregar(caminho string) (*Regras, error) {
	if caminho == "" {
		return Padrao(), nil
	}
	data, err := os.ReadFile(caminho)
	if err != nil {
		return nil, fmt.Errorf("lendo regras: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Regras, error) {
	var a arquivo
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("regras inválidas: %w", err)
	}

	r := Padrao()
	if len(a.Faixas) > 0 {
		r.Faixas = scorecard.NovaTabelaFaixas(a.Faixas)
	}
	if a.CMV != nil {
		if a.CMV.Atencao != nil {
			r.CMV.Limites.Atencao = decimal.NewFromFloat(*a.CMV.Atencao)
		}
		if a.CMV.Critico != nil {
			r.CMV.Limites.Critico = decimal.NewFromFloat(*a.CMV.Critico)
		}
	}
	for q, texto := range a.Recomendacoes {
		r.CMV.Recomendacoes[q] = texto
	}

	if err := r.Validar(); err != nil {
		return nil, err
	}
	return r, nil
}

var ErrLimitesCMV = errors.New("limite de atenção do CMV deve ser positivo e menor que o crítico")

func (r *Regras) Validar() error {
	if err := r.Faixas.Validar(); err != nil {
		return err
	}
	l := r.CMV.Limites
	if !l.Atencao.IsPositive() || !l.Atencao.LessThan(l.Critico) {
		return ErrLimitesCMV
	}
	conhecidos := map[string]bool{}
	for _, q := range cmv.Quadrantes {
		conhecidos[q] = true
		if r.CMV.Recomendacoes[q] == "" {
			return fmt.Errorf("quadrante %q sem recomendação", q)
		}
	}
	for q := range r.CMV.Recomendacoes {
		if !conhecidos[q] {
			return fmt.Errorf("quadrante desconhecido: %q", q)
		}
	}
	return nil
}
