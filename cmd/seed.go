package main

import (
	"github.com/HubGAQ/api-gaq/internal/cache"
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Grava o catálogo de áreas e critérios do scorecard (idempotente)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := carregarConfig()
		if err != nil {
			return err
		}
		catalogo, err := scorecard.CarregarCatalogo()
		if err != nil {
			return err
		}
		db, err := conectarBanco(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := scorecard.Semear(db, catalogo); err != nil {
			return err
		}
		log := config.GetLogger()
		log.WithField("areas", len(catalogo.Areas)).Info("catálogo gravado")

		rc, err := cache.Conectar(cmd.Context(), cfg.Redis.Endereco, cfg.Redis.Senha, cfg.Redis.DB)
		if err != nil {
			// o catálogo antigo expira sozinho com o TTL
			config.LogError(log, "main", "seed", "conectar redis", cfg.Redis.Endereco, err)
			return nil
		}
		if err := scorecard.InvalidarCatalogo(cmd.Context(), rc); err != nil {
			config.LogError(log, "main", "seed", "invalidar catálogo", nil, err)
		}
		return nil
	},
}
