package usuario

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/HubGAQ/api-gaq/internal/cliente"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type fakeRepo struct {
	porID  map[uint]*Usuario
	salvos []Usuario
}

func novoFakeRepo(us ...Usuario) *fakeRepo {
	f := &fakeRepo{porID: map[uint]*Usuario{}}
	for i := range us {
		u := us[i]
		f.porID[u.ID] = &u
	}
	return f
}

func (f *fakeRepo) BuscarPorEmail(_ *gorm.DB, email string) (*Usuario, error) {
	for _, u := range f.porID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Salvar(_ *gorm.DB, u *Usuario) error {
	if u.ID == 0 {
		u.ID = uint(len(f.porID) + 100)
	}
	f.porID[u.ID] = u
	f.salvos = append(f.salvos, *u)
	return nil
}

func (f *fakeRepo) BuscarPorID(_ *gorm.DB, id uint) (*Usuario, error) {
	u, ok := f.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeRepo) ListarTodos(_ *gorm.DB) ([]Usuario, error) {
	var out []Usuario
	for _, u := range f.porID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) ListarPorCliente(_ *gorm.DB, clienteID uint) ([]Usuario, error) {
	var out []Usuario
	for _, u := range f.porID {
		if u.ClienteID != nil && *u.ClienteID == clienteID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) Deletar(_ *gorm.DB, id uint) error {
	delete(f.porID, id)
	return nil
}

// fakeClientes conhece apenas o cliente 4
type fakeClientes struct {
	cliente.Repository
}

func (fakeClientes) BuscarPorID(_ *gorm.DB, id uint) (*cliente.Cliente, error) {
	if id != 4 {
		return nil, gorm.ErrRecordNotFound
	}
	c := &cliente.Cliente{Nome: "Loja Centro"}
	c.ID = 4
	return c, nil
}

func novoHandler(repo Repository) *Handler {
	return &Handler{
		Repository: repo,
		Clientes:   fakeClientes{},
		EmitirTokens: func(w http.ResponseWriter, s auth.Sessao) (auth.TokenResponse, error) {
			return auth.TokenResponse{AccessToken: "tok-" + s.Papel, TokenType: "Bearer"}, nil
		},
	}
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashSenha("senha-forte")
	if err != nil {
		t.Fatalf("HashSenha: %v", err)
	}
	u := Usuario{Email: "ana@gaq.com", Senha: hash, Papel: auth.PapelAdmin}
	u.ID = 1
	h := novoHandler(novoFakeRepo(u))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"senha correta", `{"email":"ana@gaq.com","senha":"senha-forte"}`, http.StatusOK},
		{"senha errada", `{"email":"ana@gaq.com","senha":"x"}`, http.StatusUnauthorized},
		{"usuário inexistente", `{"email":"bia@gaq.com","senha":"senha-forte"}`, http.StatusUnauthorized},
		{"email inválido", `{"email":"ana","senha":"x"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Login(w, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestCriarUsuario_SenhaTemporaria(t *testing.T) {
	repo := novoFakeRepo()
	h := novoHandler(repo)

	body := `{"nome":"Loja Centro","email":"loja@cliente.com","papel":"cliente","clienteId":4}`
	w := httptest.NewRecorder()
	h.CriarUsuario(w, httptest.NewRequest(http.MethodPost, "/usuarios", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var resp CriarUsuarioResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SenhaTemporaria == "" {
		t.Error("esperava senha temporária")
	}
	salvo := repo.salvos[0]
	if !salvo.PrecisaRedefinirSenha || salvo.ClienteID == nil || *salvo.ClienteID != 4 {
		t.Errorf("usuário salvo = %+v", salvo)
	}
	if !utils.CheckSenha(salvo.Senha, resp.SenhaTemporaria) {
		t.Error("hash salvo não corresponde à senha temporária")
	}
}

func TestCriarUsuario_ClienteSemVinculo(t *testing.T) {
	h := novoHandler(novoFakeRepo())
	body := `{"nome":"X","email":"x@cliente.com","papel":"cliente"}`
	w := httptest.NewRecorder()
	h.CriarUsuario(w, httptest.NewRequest(http.MethodPost, "/usuarios", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBuscarPorID_Permissao(t *testing.T) {
	u := Usuario{Email: "a@a.com", Papel: auth.PapelCliente}
	u.ID = 10
	h := novoHandler(novoFakeRepo(u))

	tests := []struct {
		name   string
		sessao auth.Sessao
		id     string
		want   int
	}{
		{"próprio usuário", auth.Sessao{UsuarioID: 10, Papel: auth.PapelCliente}, "10", http.StatusOK},
		{"outro usuário", auth.Sessao{UsuarioID: 11, Papel: auth.PapelCliente}, "10", http.StatusForbidden},
		{"admin", auth.Sessao{UsuarioID: 1, Papel: auth.PapelAdmin}, "10", http.StatusOK},
		{"inexistente", auth.Sessao{UsuarioID: 1, Papel: auth.PapelAdmin}, "99", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/usuarios/"+tt.id, nil)
			r = mux.SetURLVars(r, map[string]string{"id": tt.id})
			r = r.WithContext(auth.ComSessao(r.Context(), tt.sessao))
			w := httptest.NewRecorder()
			h.BuscarPorID(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCriarUsuario_Conflitos(t *testing.T) {
	existente := Usuario{Email: "ana@gaq.com", Papel: auth.PapelAdmin}
	existente.ID = 1

	tests := []struct {
		name string
		body string
		want int
	}{
		{"email já cadastrado", `{"nome":"Ana","email":"ana@gaq.com","papel":"admin"}`, http.StatusConflict},
		{"cliente inexistente", `{"nome":"X","email":"x@cliente.com","papel":"cliente","clienteId":99}`, http.StatusBadRequest},
		{"cliente existente", `{"nome":"X","email":"x@cliente.com","papel":"cliente","clienteId":4}`, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := novoFakeRepo(existente)
			h := novoHandler(repo)
			w := httptest.NewRecorder()
			h.CriarUsuario(w, httptest.NewRequest(http.MethodPost, "/usuarios", strings.NewReader(tt.body)))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want != http.StatusCreated && len(repo.salvos) != 0 {
				t.Error("nada deveria ter sido gravado")
			}
		})
	}
}

func TestAtualizarUsuario_EmailDeOutro(t *testing.T) {
	ana := Usuario{Email: "ana@gaq.com", Papel: auth.PapelAdmin}
	ana.ID = 1
	bia := Usuario{Email: "bia@gaq.com", Papel: auth.PapelAdmin}
	bia.ID = 2
	h := novoHandler(novoFakeRepo(ana, bia))

	tests := []struct {
		name  string
		email string
		want  int
	}{
		{"mantém o próprio email", "bia@gaq.com", http.StatusOK},
		{"email de outro usuário", "ana@gaq.com", http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"nome":"Bia","email":"` + tt.email + `"}`
			r := httptest.NewRequest(http.MethodPut, "/usuarios/2", strings.NewReader(body))
			r = mux.SetURLVars(r, map[string]string{"id": "2"})
			r = r.WithContext(auth.ComSessao(r.Context(), auth.Sessao{UsuarioID: 2, Papel: auth.PapelAdmin}))
			w := httptest.NewRecorder()
			h.AtualizarUsuario(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
