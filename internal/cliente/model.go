package cliente

import "gorm.io/gorm"

// Cliente é o estabelecimento atendido pela consultoria (tenant)
type Cliente struct {
	gorm.Model
	Nome        string `gorm:"size:150;not null" json:"nome"`
	CNPJ        string `gorm:"size:18;uniqueIndex;not null" json:"cnpj"`
	Segmento    string `gorm:"size:60" json:"segmento"`
	Cidade      string `gorm:"size:100" json:"cidade"`
	Responsavel string `gorm:"size:100" json:"responsavel"`
	Ativo       bool   `gorm:"not null;default:true" json:"ativo"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
