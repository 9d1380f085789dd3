package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func configurarChaveTeste(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	ConfigurarChave(pk, "kid-teste", "hubgaq", "hubgaq-web", false)
	return pk
}

func uintPtr(v uint) *uint { return &v }

func TestGenerateAndParse(t *testing.T) {
	configurarChaveTeste(t)

	tok, err := GenerateAccessToken(Sessao{UsuarioID: 9, Papel: PapelCliente, ClienteID: uintPtr(3)})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := ParseAndValidate(tok)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	s := claims.Sessao()
	if s.UsuarioID != 9 || s.Papel != PapelCliente || s.ClienteID == nil || *s.ClienteID != 3 {
		t.Errorf("sessão = %+v", s)
	}
}

func TestParseAndValidate_RejeitaOutraAudience(t *testing.T) {
	pk := configurarChaveTeste(t)
	tok, err := GenerateAccessToken(Sessao{UsuarioID: 1, Papel: PapelAdmin})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	ConfigurarChave(pk, "kid-teste", "hubgaq", "outro-app", false)
	if _, err := ParseAndValidate(tok); err == nil {
		t.Error("esperava erro de audience")
	}
}

func TestParsePrivateKey(t *testing.T) {
	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}

	pkcs1 := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(pk)})
	if _, err := parsePrivateKey(pkcs1); err != nil {
		t.Errorf("PKCS#1: %v", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(pk)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey: %v", err)
	}
	pkcs8 := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if _, err := parsePrivateKey(pkcs8); err != nil {
		t.Errorf("PKCS#8: %v", err)
	}

	if _, err := parsePrivateKey([]byte("lixo")); err == nil {
		t.Error("esperava erro para PEM inválido")
	}
}

func TestMiddlewareAutenticacao(t *testing.T) {
	configurarChaveTeste(t)
	tok, err := GenerateAccessToken(Sessao{UsuarioID: 5, Papel: PapelAdmin})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	var vista Sessao
	h := MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vista, _ = SessaoDe(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"sem token", "", http.StatusUnauthorized},
		{"token inválido", "Bearer abc", http.StatusUnauthorized},
		{"token válido", "Bearer " + tok, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
	if vista.UsuarioID != 5 || !vista.IsAdmin() {
		t.Errorf("sessão no contexto = %+v", vista)
	}
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		name   string
		sessao *Sessao
		want   int
	}{
		{"sem sessão", nil, http.StatusForbidden},
		{"cliente", &Sessao{UsuarioID: 2, Papel: PapelCliente, ClienteID: uintPtr(1)}, http.StatusForbidden},
		{"admin", &Sessao{UsuarioID: 1, Papel: PapelAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/clientes", nil)
			if tt.sessao != nil {
				r = r.WithContext(ComSessao(r.Context(), *tt.sessao))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestExigirAcessoCliente(t *testing.T) {
	h := ExigirAcessoCliente(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		name   string
		sessao Sessao
		id     string
		want   int
	}{
		{"admin acessa qualquer cliente", Sessao{Papel: PapelAdmin}, "42", http.StatusOK},
		{"cliente acessa o próprio", Sessao{Papel: PapelCliente, ClienteID: uintPtr(7)}, "7", http.StatusOK},
		{"cliente em outro tenant", Sessao{Papel: PapelCliente, ClienteID: uintPtr(7)}, "8", http.StatusForbidden},
		{"cliente sem vínculo", Sessao{Papel: PapelCliente}, "7", http.StatusForbidden},
		{"id inválido", Sessao{Papel: PapelAdmin}, "x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/clientes/"+tt.id, nil)
			r = mux.SetURLVars(r, map[string]string{"id": tt.id})
			r = r.WithContext(ComSessao(r.Context(), tt.sessao))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestJWKSHandler(t *testing.T) {
	configurarChaveTeste(t)
	w := httptest.NewRecorder()
	JWKSHandler(w, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Keys) != 1 || body.Keys[0].Kid != "kid-teste" || body.Keys[0].E != "AQAB" {
		t.Errorf("jwks = %+v", body.Keys)
	}
}

func TestRefreshTokenValido(t *testing.T) {
	agora := time.Now()
	revogado := agora.Add(-time.Minute)

	tests := []struct {
		name string
		rt   RefreshToken
		want bool
	}{
		{"ativo", RefreshToken{ExpiresAt: agora.Add(time.Hour)}, true},
		{"expirado", RefreshToken{ExpiresAt: agora.Add(-time.Hour)}, false},
		{"revogado", RefreshToken{ExpiresAt: agora.Add(time.Hour), RevokedAt: &revogado}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rt.Valido(agora); got != tt.want {
				t.Errorf("Valido() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashRaw(t *testing.T) {
	raw, err := genRaw()
	if err != nil {
		t.Fatalf("genRaw: %v", err)
	}
	if hashRaw(raw) == raw {
		t.Error("hash não pode ser igual ao token cru")
	}
	if hashRaw(raw) != hashRaw(raw) {
		t.Error("hash deve ser determinístico")
	}
}
