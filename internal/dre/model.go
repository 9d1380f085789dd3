package dre

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DRE é o resultado mensal de um cliente. Existe no máximo uma por competência.
type DRE struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ClienteID        uint            `gorm:"not null;uniqueIndex:idx_dre_cliente_competencia" json:"clienteId"`
	Competencia      string          `gorm:"size:7;not null;uniqueIndex:idx_dre_cliente_competencia" json:"competencia"`
	ReceitaBruta     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"receitaBruta"`
	Impostos         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"impostos"`
	CustosVariaveis  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"custosVariaveis"`
	CustosFixos      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"custosFixos"`
	QuantidadeVendas *int            `json:"quantidadeVendas,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&DRE{})
}

const layoutCompetencia = "2006-01"

// ValidarCompetencia aceita o formato AAAA-MM
func ValidarCompetencia(c string) error {
	if _, err := time.Parse(layoutCompetencia, c); err != nil {
		return fmt.Errorf("competência %q inválida, use AAAA-MM", c)
	}
	return nil
}
