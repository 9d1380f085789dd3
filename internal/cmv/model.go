package cmv

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DemandaAlta   = "alta"
	DemandaNormal = "normal"
	DemandaBaixa  = "baixa"
)

// NormalizarDemanda trata demanda vazia como normal
func NormalizarDemanda(d string) string {
	if d == "" {
		return DemandaNormal
	}
	return d
}

// Insumo é um ingrediente comprado pelo cliente. O custo unitário é
// derivado do preço e da quantidade da compra.
type Insumo struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ClienteID        uint            `gorm:"not null;index" json:"clienteId"`
	Nome             string          `gorm:"size:120;not null" json:"nome"`
	UnidadeCompra    string          `gorm:"size:10;not null" json:"unidadeCompra"`
	PrecoCompra      decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"precoCompra"`
	QuantidadeCompra decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"quantidadeCompra"`
	CustoUnitario    decimal.Decimal `gorm:"-" json:"custoUnitario"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CalcularCustoUnitario devolve zero quando a quantidade comprada não é positiva
func (i *Insumo) CalcularCustoUnitario() decimal.Decimal {
	if !i.QuantidadeCompra.IsPositive() {
		return decimal.Zero
	}
	return i.PrecoCompra.Div(i.QuantidadeCompra)
}

func (i *Insumo) AfterFind(tx *gorm.DB) error {
	i.CustoUnitario = i.CalcularCustoUnitario()
	return nil
}

func (i *Insumo) AfterSave(tx *gorm.DB) error {
	i.CustoUnitario = i.CalcularCustoUnitario()
	return nil
}

// FichaTecnica é um item do cardápio e sua receita
type FichaTecnica struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ClienteID  uint            `gorm:"not null;index" json:"clienteId"`
	Nome       string          `gorm:"size:120;not null" json:"nome"`
	Categoria  string          `gorm:"size:60" json:"categoria"`
	PrecoVenda decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"precoVenda"`
	Demanda    string          `gorm:"size:10;not null;default:'normal'" json:"demanda"`
	Itens      []ItemFicha     `gorm:"foreignKey:FichaTecnicaID;constraint:OnDelete:CASCADE;" json:"itens"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ItemFicha é uma linha da ficha técnica: quanto de um insumo vai na receita
type ItemFicha struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	FichaTecnicaID uint            `gorm:"not null;index" json:"fichaTecnicaId"`
	InsumoID       uint            `gorm:"not null;index" json:"insumoId"`
	Quantidade     decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"quantidade"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Insumo{}, &FichaTecnica{}, &ItemFicha{})
}
