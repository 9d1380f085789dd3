package scorecard

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusRascunho  = "rascunho"
	StatusConcluida = "concluida"
)

// Area é uma dimensão do diagnóstico (Finanças, Operação...). Vem do catálogo.
type Area struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Codigo          string     `gorm:"size:40;uniqueIndex;not null" json:"codigo"`
	Nome            string     `gorm:"size:100;not null" json:"nome"`
	PontuacaoMaxima int        `gorm:"not null" json:"pontuacaoMaxima"`
	Ordem           int        `gorm:"not null;default:0" json:"ordem"`
	Criterios       []Criterio `gorm:"foreignKey:AreaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"criterios,omitempty"`
}

type Criterio struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	AreaID          uint   `gorm:"not null;index" json:"areaId"`
	Codigo          string `gorm:"size:40;uniqueIndex;not null" json:"codigo"`
	Nome            string `gorm:"size:150;not null" json:"nome"`
	Descricao       string `gorm:"type:text" json:"descricao"`
	PontuacaoMaxima int    `gorm:"not null" json:"pontuacaoMaxima"`
	Ordem           int    `gorm:"not null;default:0" json:"ordem"`
}

// Avaliacao é uma aplicação do scorecard a um cliente. Só pode existir um
// rascunho por cliente; as concluídas formam o histórico.
type Avaliacao struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ClienteID      uint        `gorm:"not null;index;uniqueIndex:idx_avaliacao_rascunho,where:status = 'rascunho'" json:"clienteId"`
	Status         string      `gorm:"size:20;not null;default:'rascunho'" json:"status"`
	PontuacaoTotal int         `gorm:"not null;default:0" json:"pontuacaoTotal"`
	Classificacao  string      `gorm:"size:40" json:"classificacao"`
	Data           time.Time   `gorm:"not null;index" json:"data"`
	ConcluidaEm    *time.Time  `json:"concluidaEm,omitempty"`
	Pontuacoes     []Pontuacao `gorm:"foreignKey:AvaliacaoID;constraint:OnDelete:CASCADE;" json:"pontuacoes,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (a *Avaliacao) Concluida() bool { return a.Status == StatusConcluida }

// Pontuacao é a nota de um critério numa avaliação: 0, 12 ou 25
type Pontuacao struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	AvaliacaoID uint      `gorm:"not null;uniqueIndex:idx_pontuacao_avaliacao_criterio" json:"avaliacaoId"`
	CriterioID  uint      `gorm:"not null;uniqueIndex:idx_pontuacao_avaliacao_criterio" json:"criterioId"`
	Pontos      int       `gorm:"not null" json:"pontos"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Area{}, &Criterio{}, &Avaliacao{}, &Pontuacao{})
}
