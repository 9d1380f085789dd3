package main

import (
	"errors"
	"fmt"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/HubGAQ/api-gaq/internal/usuario"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	adminNome  string
	adminEmail string
	adminSenha string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Cria um usuário consultor (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := carregarConfig()
		if err != nil {
			return err
		}
		db, err := conectarBanco(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		repo := usuario.NewRepository()
		if _, err := repo.BuscarPorEmail(db, adminEmail); err == nil {
			return fmt.Errorf("já existe usuário com o email %s", adminEmail)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		senha, temporaria := adminSenha, false
		if senha == "" {
			if senha, err = utils.GerarSenhaTemporaria(); err != nil {
				return err
			}
			temporaria = true
		}
		hash, err := utils.HashSenha(senha)
		if err != nil {
			return err
		}

		u := usuario.Usuario{
			Nome:                  adminNome,
			Email:                 adminEmail,
			Senha:                 hash,
			Papel:                 auth.PapelAdmin,
			PrecisaRedefinirSenha: temporaria,
		}
		if err := repo.Salvar(db, &u); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s criado (id %d)\n", u.Email, u.ID)
		if temporaria {
			fmt.Fprintf(cmd.OutOrStdout(), "senha temporária: %s\n", senha)
		}
		return nil
	},
}

func init() {
	adminCmd.Flags().StringVar(&adminNome, "nome", "Administrador", "nome do consultor")
	adminCmd.Flags().StringVar(&adminEmail, "email", "", "email de login")
	adminCmd.Flags().StringVar(&adminSenha, "senha", "", "senha inicial (gera uma temporária se vazia)")
	_ = adminCmd.MarkFlagRequired("email")
}
