package scorecard

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalogo.yaml
var catalogoPadrao []byte

// PontuacaoMaximaCriterio é o valor de "atende" em todos os critérios
const PontuacaoMaximaCriterio = 25

type CatalogoCriterio struct {
	Codigo          string `yaml:"codigo"`
	Nome            string `yaml:"nome"`
	Descricao       string `yaml:"descricao"`
	PontuacaoMaxima int    `yaml:"pontuacaoMaxima"`
}

type CatalogoArea struct {
	Codigo    string             `yaml:"codigo"`
	Nome      string             `yaml:"nome"`
	Criterios []CatalogoCriterio `yaml:"criterios"`
}

// Catalogo descreve áreas e critérios do scorecard na ordem de exibição
type Catalogo struct {
	Areas []CatalogoArea `yaml:"areas"`
}

// CarregarCatalogo lê o catálogo embutido
func CarregarCatalogo() (*Catalogo, error) {
	return ParseCatalogo(catalogoPadrao)
}

// ParseCatalogo lê e valida um catálogo em YAML. Critérios sem
// pontuacaoMaxima assumem 25.
func ParseCatalogo(data []byte) (*Catalogo, error) {
	var c Catalogo
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catálogo inválido: %w", err)
	}
	for i := range c.Areas {
		for j := range c.Areas[i].Criterios {
			if c.Areas[i].Criterios[j].PontuacaoMaxima == 0 {
				c.Areas[i].Criterios[j].PontuacaoMaxima = PontuacaoMaximaCriterio
			}
		}
	}
	if err := c.Validar(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalogo) Validar() error {
	codigos := map[string]bool{}
	total := 0
	for _, a := range c.Areas {
		if a.Codigo == "" || codigos[a.Codigo] {
			return fmt.Errorf("área com código vazio ou duplicado: %q", a.Codigo)
		}
		codigos[a.Codigo] = true
		if len(a.Criterios) == 0 {
			return fmt.Errorf("área %q sem critérios", a.Codigo)
		}
		for _, cr := range a.Criterios {
			if cr.Codigo == "" || codigos[cr.Codigo] {
				return fmt.Errorf("critério com código vazio ou duplicado: %q", cr.Codigo)
			}
			codigos[cr.Codigo] = true
			if !PontosValidos(cr.PontuacaoMaxima) || cr.PontuacaoMaxima == 0 {
				return fmt.Errorf("critério %q com pontuação máxima %d", cr.Codigo, cr.PontuacaoMaxima)
			}
			total += cr.PontuacaoMaxima
		}
	}
	if total != PontuacaoMaximaTotal {
		return fmt.Errorf("catálogo soma %d pontos, esperado %d", total, PontuacaoMaximaTotal)
	}
	return nil
}

// Modelos converte o catálogo em áreas com critérios; a pontuação máxima da
// área é a soma dos seus critérios.
func (c *Catalogo) Modelos() []Area {
	out := make([]Area, 0, len(c.Areas))
	for i, ca := range c.Areas {
		a := Area{Codigo: ca.Codigo, Nome: ca.Nome, Ordem: i + 1}
		for j, cc := range ca.Criterios {
			a.PontuacaoMaxima += cc.PontuacaoMaxima
			a.Criterios = append(a.Criterios, Criterio{
				Codigo:          cc.Codigo,
				Nome:            cc.Nome,
				Descricao:       cc.Descricao,
				PontuacaoMaxima: cc.PontuacaoMaxima,
				Ordem:           j + 1,
			})
		}
		out = append(out, a)
	}
	return out
}

// Semear grava o catálogo. Pode ser executado várias vezes: áreas e critérios
// são casados pelo código e apenas atualizados.
func Semear(db *gorm.DB, c *Catalogo) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, a := range c.Modelos() {
			criterios := a.Criterios
			a.Criterios = nil
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "codigo"}},
				DoUpdates: clause.AssignmentColumns([]string{"nome", "pontuacao_maxima", "ordem"}),
			}).Create(&a).Error; err != nil {
				return fmt.Errorf("área %s: %w", a.Codigo, err)
			}
			if err := tx.Where("codigo = ?", a.Codigo).First(&a).Error; err != nil {
				return fmt.Errorf("área %s: %w", a.Codigo, err)
			}
			for i := range criterios {
				criterios[i].AreaID = a.ID
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "codigo"}},
				DoUpdates: clause.AssignmentColumns([]string{"area_id", "nome", "descricao", "pontuacao_maxima", "ordem"}),
			}).Create(&criterios).Error; err != nil {
				return fmt.Errorf("critérios da área %s: %w", a.Codigo, err)
			}
		}
		return nil
	})
}
