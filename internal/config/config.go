package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config reúne toda a configuração da API
type Config struct {
	Servidor      ServidorConfig
	Banco         BancoConfig
	Redis         RedisConfig
	Auth          AuthConfig
	WebhookURL    string
	ArquivoRegras string
	NivelLog      string
}

type ServidorConfig struct {
	Porta       int
	OrigensCORS []string
}

type BancoConfig struct {
	Host            string
	Porta           int
	Nome            string
	Usuario         string
	Senha           string
	SecretID        string
	SSLDesabilitado bool
}

// RedisConfig fica vazio quando o cache não é usado
type RedisConfig struct {
	Endereco string
	Senha    string
	DB       int
}

type AuthConfig struct {
	ChavePrivada string
	KID          string
	Issuer       string
	Audience     string
	CookieSeguro bool
}

// Defaults registra os valores padrão no viper informado
func Defaults(v *viper.Viper) {
	v.SetDefault("server_port", 8080)
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_name", "hubgaq")
	v.SetDefault("db_ssl_mode_disable", false)
	v.SetDefault("redis_address", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("auth_issuer", "hubgaq")
	v.SetDefault("auth_audience", "hubgaq-web")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("log_level", "info")
}

// Load lê o .env (se existir) e as variáveis de ambiente
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	if v == nil {
		v = viper.New()
	}
	Defaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Servidor: ServidorConfig{
			Porta:       v.GetInt("server_port"),
			OrigensCORS: splitLista(v.GetString("cors_origins")),
		},
		Banco: BancoConfig{
			Host:            v.GetString("db_host"),
			Porta:           v.GetInt("db_port"),
			Nome:            v.GetString("db_name"),
			Usuario:         v.GetString("db_username"),
			Senha:           v.GetString("db_password"),
			SecretID:        v.GetString("db_secret_id"),
			SSLDesabilitado: v.GetBool("db_ssl_mode_disable"),
		},
		Redis: RedisConfig{
			Endereco: v.GetString("redis_address"),
			Senha:    v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Auth: AuthConfig{
			ChavePrivada: v.GetString("auth_rsa_private_path"),
			KID:          v.GetString("auth_kid"),
			Issuer:       v.GetString("auth_issuer"),
			Audience:     v.GetString("auth_audience"),
			CookieSeguro: v.GetBool("cookie_secure"),
		},
		WebhookURL:    v.GetString("webhook_url"),
		ArquivoRegras: v.GetString("rules_file"),
		NivelLog:      v.GetString("log_level"),
	}

	if err := cfg.Validar(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return cfg, nil
}

// Validar confere os campos obrigatórios
func (c *Config) Validar() error {
	if c.Servidor.Porta < 1 || c.Servidor.Porta > 65535 {
		return fmt.Errorf("porta do servidor inválida: %d", c.Servidor.Porta)
	}
	if c.Banco.Host == "" || c.Banco.Nome == "" {
		return fmt.Errorf("DB_HOST e DB_NAME são obrigatórios")
	}
	if c.Banco.Usuario == "" && c.Banco.SecretID == "" {
		return fmt.Errorf("informe DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}
	return nil
}

func splitLista(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
