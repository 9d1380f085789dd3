package main

import (
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria ou atualiza as tabelas",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := carregarConfig()
		if err != nil {
			return err
		}
		db, err := conectarBanco(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := database.Migrar(db); err != nil {
			return err
		}
		config.GetLogger().Info("migração concluída")
		return nil
	},
}
