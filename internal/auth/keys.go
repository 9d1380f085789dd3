package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	keysMu sync.RWMutex

	privKey   *rsa.PrivateKey
	pubKeys   = map[string]*rsa.PublicKey{} // kid -> pub
	activeKID string
	issuer    string
	audience  string
	cookieSeg bool
)

var ErrChavesNaoConfiguradas = errors.New("chaves de assinatura não configuradas")

// Configurar lê a chave privada RSA (PKCS#1 ou PKCS#8) do caminho configurado
func Configurar(cfg config.AuthConfig) error {
	if cfg.ChavePrivada == "" || cfg.KID == "" || cfg.Issuer == "" || cfg.Audience == "" {
		return errors.New("missing envs: AUTH_RSA_PRIVATE_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
	}

	b, err := os.ReadFile(cfg.ChavePrivada)
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}
	pk, err := parsePrivateKey(b)
	if err != nil {
		return err
	}
	ConfigurarChave(pk, cfg.KID, cfg.Issuer, cfg.Audience, cfg.CookieSeguro)
	return nil
}

// ConfigurarChave instala uma chave já carregada
func ConfigurarChave(pk *rsa.PrivateKey, kid, iss, aud string, secure bool) {
	keysMu.Lock()
	defer keysMu.Unlock()
	privKey = pk
	activeKID = kid
	issuer = iss
	audience = aud
	cookieSeg = secure
	pubKeys = map[string]*rsa.PublicKey{kid: &pk.PublicKey}
}

func parsePrivateKey(b []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem decode private key failed")
	}

	var pk any
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		pk = k
	} else if k8, err2 := x509.ParsePKCS8PrivateKey(block.Bytes); err2 == nil {
		pk = k8
	} else {
		return nil, fmt.Errorf("parse private key: %v / %v", err, err2)
	}

	rsaKey, ok := pk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return rsaKey, nil
}

func getPriv() *rsa.PrivateKey {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return privKey
}

func getPub(kid string) (*rsa.PublicKey, bool) {
	keysMu.RLock()
	defer keysMu.RUnlock()
	p, ok := pubKeys[kid]
	return p, ok
}

func getKID() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return activeKID
}

func getIssuer() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return issuer
}

func getAudience() string {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return audience
}

func cookieSecure() bool {
	keysMu.RLock()
	defer keysMu.RUnlock()
	return cookieSeg
}

func signMethod() jwt.SigningMethod { return jwt.SigningMethodRS256 }
