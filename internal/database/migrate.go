package database

import (
	"fmt"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/HubGAQ/api-gaq/internal/cliente"
	"github.com/HubGAQ/api-gaq/internal/cmv"
	"github.com/HubGAQ/api-gaq/internal/dre"
	"github.com/HubGAQ/api-gaq/internal/planoacao"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/HubGAQ/api-gaq/internal/usuario"
	"gorm.io/gorm"
)

type migracao struct {
	nome string
	fn   func(*gorm.DB) error
}

var migracoes = []migracao{
	{"cliente", cliente.Migrate},
	{"usuario", usuario.Migrate},
	{"auth", auth.Migrate},
	{"scorecard", scorecard.Migrate},
	{"cmv", cmv.Migrate},
	{"dre", dre.Migrate},
	{"planoacao", planoacao.Migrate},
}

// Migrar roda o AutoMigrate de todos os módulos
func Migrar(db *gorm.DB) error {
	for _, m := range migracoes {
		if err := m.fn(db); err != nil {
			return fmt.Errorf("migrar %s: %w", m.nome, err)
		}
	}
	return nil
}
