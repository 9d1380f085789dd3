package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/HubGAQ/api-gaq/internal/cache"
	"github.com/HubGAQ/api-gaq/internal/cliente"
	"github.com/HubGAQ/api-gaq/internal/cmv"
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/dre"
	"github.com/HubGAQ/api-gaq/internal/notificacao"
	"github.com/HubGAQ/api-gaq/internal/planoacao"
	"github.com/HubGAQ/api-gaq/internal/regras"
	"github.com/HubGAQ/api-gaq/internal/relatorio"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/HubGAQ/api-gaq/internal/usuario"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

const timeoutShutdown = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return servir(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "porta HTTP (padrão SERVER_PORT ou 8080)")
	_ = viper.BindPFlag("server_port", serveCmd.Flags().Lookup("port"))
}

func servir(ctx context.Context) error {
	cfg, err := carregarConfig()
	if err != nil {
		return err
	}
	log := config.GetLogger()

	if err := auth.Configurar(cfg.Auth); err != nil {
		return fmt.Errorf("configurar chaves: %w", err)
	}
	rg, err := regras.Carregar(cfg.ArquivoRegras)
	if err != nil {
		return err
	}

	db, err := conectarBanco(ctx, cfg)
	if err != nil {
		return err
	}

	rc, err := cache.Conectar(ctx, cfg.Redis.Endereco, cfg.Redis.Senha, cfg.Redis.DB)
	if err != nil {
		// o serviço funciona sem cache e sem lock distribuído
		config.LogError(log, "main", "servir", "conectar redis", cfg.Redis.Endereco, err)
	}

	var notificador scorecard.Notificador
	if cfg.WebhookURL != "" {
		notificador = notificacao.NovoWebhook(cfg.WebhookURL)
	}

	r := novoRouter(db, rc, rg, notificador)
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Servidor.OrigensCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", headerRequestID},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Servidor.Porta),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	erros := make(chan error, 1)
	go func() {
		log.WithField("porta", cfg.Servidor.Porta).Info("servidor rodando")
		erros <- srv.ListenAndServe()
	}()

	select {
	case err := <-erros:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeoutShutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func novoRouter(db *gorm.DB, rc *cache.Redis, rg *regras.Regras, n scorecard.Notificador) *mux.Router {
	usuarioHandler := usuario.NewHandler(db)
	clienteHandler := cliente.NewHandler(db)
	scorecardHandler := scorecard.NewHandler(db, rc, rg.Faixas, n)
	cmvHandler := cmv.NewHandler(db, rg.CMV)
	dreHandler := dre.NewHandler(db)
	planoHandler := planoacao.NewHandler(db)
	relatorioHandler := relatorio.NewHandler(scorecardHandler, cmvHandler)

	r := mux.NewRouter()
	r.Use(logRequisicoes)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	// Rotas públicas de autenticação
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(db)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(db)).Methods("POST")
	r.HandleFunc("/.well-known/jwks.json", auth.JWKSHandler).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")

	// Rotas de usuários
	api.Handle("/usuarios", auth.AdminFunc(usuarioHandler.CriarUsuario)).Methods("POST")
	api.Handle("/usuarios", auth.AdminFunc(usuarioHandler.ListarUsuarios)).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.AtualizarUsuario).Methods("PUT")
	api.Handle("/usuarios/{id}", auth.AdminFunc(usuarioHandler.DeletarUsuario)).Methods("DELETE")

	// Catálogo do scorecard
	api.HandleFunc("/scorecard/areas", scorecardHandler.Catalogo).Methods("GET")
	api.HandleFunc("/scorecard/faixas", scorecardHandler.ListarFaixas).Methods("GET")

	// Rotas de clientes
	api.Handle("/clientes", auth.AdminFunc(clienteHandler.Criar)).Methods("POST")
	api.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")

	cli := api.PathPrefix("/clientes/{id:[0-9]+}").Subrouter()
	cli.Use(auth.ExigirAcessoCliente)

	cli.HandleFunc("", clienteHandler.BuscarPorID).Methods("GET")
	cli.Handle("", auth.AdminFunc(clienteHandler.Atualizar)).Methods("PUT")
	cli.Handle("", auth.AdminFunc(clienteHandler.Deletar)).Methods("DELETE")

	// Scorecard
	cli.HandleFunc("/avaliacoes", scorecardHandler.ListarAvaliacoes).Methods("GET")
	cli.Handle("/avaliacoes/rascunho", auth.AdminFunc(scorecardHandler.ObterOuCriarRascunho)).Methods("POST")
	cli.HandleFunc("/avaliacoes/{aid:[0-9]+}", scorecardHandler.Detalhe).Methods("GET")
	cli.HandleFunc("/avaliacoes/{aid:[0-9]+}/previa", scorecardHandler.Previa).Methods("GET")
	cli.Handle("/avaliacoes/{aid:[0-9]+}/pontuacoes", auth.AdminFunc(scorecardHandler.SalvarPontuacoes)).Methods("PUT")
	cli.Handle("/avaliacoes/{aid:[0-9]+}/finalizar", auth.AdminFunc(scorecardHandler.Finalizar)).Methods("POST")
	cli.HandleFunc("/avaliacoes/{aid:[0-9]+}/exportar", relatorioHandler.ExportarAvaliacao).Methods("GET")

	// Insumos e fichas técnicas
	cli.HandleFunc("/insumos", cmvHandler.ListarInsumos).Methods("GET")
	cli.Handle("/insumos", auth.AdminFunc(cmvHandler.CriarInsumo)).Methods("POST")
	cli.Handle("/insumos/{iid:[0-9]+}", auth.AdminFunc(cmvHandler.AtualizarInsumo)).Methods("PUT")
	cli.Handle("/insumos/{iid:[0-9]+}", auth.AdminFunc(cmvHandler.DeletarInsumo)).Methods("DELETE")

	cli.HandleFunc("/fichas", cmvHandler.ListarFichas).Methods("GET")
	cli.Handle("/fichas", auth.AdminFunc(cmvHandler.CriarFicha)).Methods("POST")
	cli.HandleFunc("/fichas/exportar", relatorioHandler.ExportarFichas).Methods("GET")
	cli.HandleFunc("/fichas/{fid:[0-9]+}", cmvHandler.BuscarFicha).Methods("GET")
	cli.Handle("/fichas/{fid:[0-9]+}", auth.AdminFunc(cmvHandler.AtualizarFicha)).Methods("PUT")
	cli.Handle("/fichas/{fid:[0-9]+}", auth.AdminFunc(cmvHandler.DeletarFicha)).Methods("DELETE")
	cli.HandleFunc("/fichas/{fid:[0-9]+}/custo", cmvHandler.CustoFicha).Methods("GET")

	cli.HandleFunc("/cmv", cmvHandler.Painel).Methods("GET")
	cli.HandleFunc("/engenharia-cardapio", cmvHandler.EngenhariaCardapio).Methods("GET")

	// DRE e simuladores
	cli.HandleFunc("/dres", dreHandler.Listar).Methods("GET")
	cli.HandleFunc("/dres/{competencia}", dreHandler.Buscar).Methods("GET")
	cli.Handle("/dres/{competencia}", auth.AdminFunc(dreHandler.Salvar)).Methods("PUT")
	cli.Handle("/dres/{competencia}", auth.AdminFunc(dreHandler.Deletar)).Methods("DELETE")
	cli.HandleFunc("/dres/{competencia}/simulacoes/preco", dreHandler.SimularPreco).Methods("POST")
	cli.HandleFunc("/dres/{competencia}/simulacoes/meta-cmv", dreHandler.SimularMetaCMV).Methods("POST")
	cli.HandleFunc("/dres/{competencia}/simulacoes/vendas-extras", dreHandler.SimularVendasExtras).Methods("POST")

	// Planos de ação
	cli.HandleFunc("/planos-acao", planoHandler.Listar).Methods("GET")
	cli.Handle("/planos-acao", auth.AdminFunc(planoHandler.Criar)).Methods("POST")
	cli.Handle("/planos-acao/{pid:[0-9]+}", auth.AdminFunc(planoHandler.Atualizar)).Methods("PUT")
	cli.Handle("/planos-acao/{pid:[0-9]+}", auth.AdminFunc(planoHandler.Deletar)).Methods("DELETE")
	cli.Handle("/planos-acao/{pid:[0-9]+}/status", auth.AdminFunc(planoHandler.AtualizarStatus)).Methods("PATCH")

	return r
}
