package database

import (
	"context"
	"fmt"

	"github.com/HubGAQ/api-gaq/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre a conexão com o PostgreSQL. Sem usuário/senha no ambiente,
// as credenciais vêm do AWS Secrets Manager.
func Conectar(ctx context.Context, cfg config.BancoConfig) (*gorm.DB, error) {
	usuario, senha := cfg.Usuario, cfg.Senha
	if usuario == "" || senha == "" {
		client, err := novoClienteSecrets(ctx)
		if err != nil {
			return nil, err
		}
		cred, err := buscarCredenciais(ctx, client, cfg.SecretID)
		if err != nil {
			return nil, err
		}
		usuario, senha = cred.Username, cred.Password
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg, usuario, senha)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar no banco: %w", err)
	}
	return db, nil
}

// DSN monta a string de conexão do driver postgres
func DSN(cfg config.BancoConfig, usuario, senha string) string {
	var sslMode string
	if cfg.SSLDesabilitado {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		cfg.Host, usuario, senha, cfg.Nome, cfg.Porta, sslMode)
}
