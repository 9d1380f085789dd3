package usuario

import "gorm.io/gorm"

// Usuario é quem entra no painel: consultor (admin) ou usuário de um cliente
type Usuario struct {
	gorm.Model
	Nome                  string `gorm:"size:100;not null" json:"nome"`
	Email                 string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Telefone              string `gorm:"size:20" json:"telefone"`
	Senha                 string `gorm:"size:255;not null" json:"-"`
	Papel                 string `gorm:"size:20;not null;default:'cliente'" json:"papel"`
	ClienteID             *uint  `gorm:"index" json:"clienteId,omitempty"`
	PrecisaRedefinirSenha bool   `json:"precisaRedefinirSenha"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
