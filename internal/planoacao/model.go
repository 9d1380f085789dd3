package planoacao

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPendente    = "Pendente"
	StatusEmAndamento = "Em andamento"
	StatusConcluida   = "Concluída"
	StatusCancelada   = "Cancelada"
)

// PlanoAcao é uma ação corretiva do cliente, normalmente nascida de um
// critério mal avaliado no scorecard.
type PlanoAcao struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ClienteID     uint       `gorm:"not null;index" json:"clienteId"`
	AvaliacaoID   *uint      `gorm:"index" json:"avaliacaoId,omitempty"`
	CriterioID    *uint      `json:"criterioId,omitempty"`
	Titulo        string     `gorm:"size:150;not null" json:"titulo"`
	Descricao     string     `gorm:"type:text" json:"descricao"`
	Responsavel   string     `gorm:"size:100" json:"responsavel"`
	Prazo         *time.Time `json:"prazo,omitempty"`
	Status        string     `gorm:"size:20;not null;default:'Pendente';index" json:"status"`
	DataConclusao *time.Time `json:"dataConclusao,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&PlanoAcao{})
}
