package auth

import "time"

// RefreshToken guarda apenas o hash do token entregue no cookie
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UsuarioID uint   `gorm:"index"`
	FamilyID  string `gorm:"size:36;index"`
	Hash      string `gorm:"uniqueIndex"`
	Papel     string `gorm:"size:20"`
	ClienteID *uint
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (t RefreshToken) Sessao() Sessao {
	return Sessao{UsuarioID: t.UsuarioID, Papel: t.Papel, ClienteID: t.ClienteID}
}

// Valido diz se o token ainda pode ser trocado
func (t RefreshToken) Valido(agora time.Time) bool {
	return t.RevokedAt == nil && agora.Before(t.ExpiresAt)
}
