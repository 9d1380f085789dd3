package auth

import (
	"context"
	"net/http"

	"github.com/HubGAQ/api-gaq/internal/utils"
)

const (
	PapelAdmin   = "admin"
	PapelCliente = "cliente"
)

// Sessao é o contexto explícito de quem está operando e sobre qual cliente.
// Admins (consultores) enxergam toda a carteira; usuários cliente apenas o próprio.
type Sessao struct {
	UsuarioID uint
	Papel     string
	ClienteID *uint
}

func (s Sessao) IsAdmin() bool { return s.Papel == PapelAdmin }

// PodeAcessarCliente diz se a sessão pode ler dados do cliente informado
func (s Sessao) PodeAcessarCliente(clienteID uint) bool {
	if s.IsAdmin() {
		return true
	}
	return s.ClienteID != nil && *s.ClienteID == clienteID
}

type ctxKey string

const sessaoKey ctxKey = "sessao"

func ComSessao(ctx context.Context, s Sessao) context.Context {
	return context.WithValue(ctx, sessaoKey, s)
}

// SessaoDe devolve a sessão do contexto; ok=false se a rota não passou pelo middleware
func SessaoDe(ctx context.Context) (Sessao, bool) {
	s, ok := ctx.Value(sessaoKey).(Sessao)
	return s, ok
}

// ExigirAcessoCliente bloqueia rotas /clientes/{id}/... de outros tenants
func ExigirAcessoCliente(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessaoDe(r.Context())
		if !ok {
			http.Error(w, "Não autenticado", http.StatusUnauthorized)
			return
		}
		clienteID, err := utils.IDParam(r, "id")
		if err != nil {
			http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
			return
		}
		if !s.PodeAcessarCliente(clienteID) {
			http.Error(w, "acesso negado", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
