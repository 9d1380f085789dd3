package main

import (
	"context"
	"fmt"
	"os"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/database"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "hubgaq",
	Short:        "API do Hub GAQ: scorecard, CMV e DRE dos clientes da consultoria",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "nível de log (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("rules-file", "", "arquivo YAML com as regras de negócio")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("rules_file", rootCmd.PersistentFlags().Lookup("rules-file"))

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, adminCmd)
}

// carregarConfig lê .env, ambiente e flags; também ajusta o nível do log
func carregarConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	config.SetNivelLog(cfg.NivelLog)
	return cfg, nil
}

func conectarBanco(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Conectar(ctx, cfg.Banco)
	if err != nil {
		return nil, err
	}
	config.GetLogger().WithField("host", cfg.Banco.Host).Info("conectado ao banco")
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
