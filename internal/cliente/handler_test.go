package cliente

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type fakeRepo struct {
	clientes map[uint]*Cliente
}

func novoFakeRepo(cs ...Cliente) *fakeRepo {
	f := &fakeRepo{clientes: map[uint]*Cliente{}}
	for i := range cs {
		c := cs[i]
		f.clientes[c.ID] = &c
	}
	return f
}

func (f *fakeRepo) Salvar(_ *gorm.DB, c *Cliente) error {
	if c.ID == 0 {
		c.ID = uint(len(f.clientes) + 1)
	}
	f.clientes[c.ID] = c
	return nil
}

func (f *fakeRepo) ListarTodos(_ *gorm.DB) ([]Cliente, error) {
	var out []Cliente
	for _, c := range f.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) BuscarPorID(_ *gorm.DB, id uint) (*Cliente, error) {
	c, ok := f.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeRepo) BuscarPorCNPJ(_ *gorm.DB, cnpj string) (*Cliente, error) {
	for _, c := range f.clientes {
		if c.CNPJ == cnpj {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Deletar(_ *gorm.DB, id uint) error {
	delete(f.clientes, id)
	return nil
}

func cliente(id uint, nome, cnpj string) Cliente {
	c := Cliente{Nome: nome, CNPJ: cnpj, Ativo: true}
	c.ID = id
	return c
}

func uintPtr(v uint) *uint { return &v }

func TestCriar(t *testing.T) {
	h := &Handler{Repository: novoFakeRepo(cliente(1, "Bistrô", "12.345.678/0001-90"))}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"novo cliente", `{"nome":"Cantina","cnpj":"98.765.432/0001-10"}`, http.StatusCreated},
		{"cnpj duplicado", `{"nome":"Outro","cnpj":"12.345.678/0001-90"}`, http.StatusConflict},
		{"sem nome", `{"cnpj":"11.111.111/0001-11"}`, http.StatusBadRequest},
		{"json quebrado", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Criar(w, httptest.NewRequest(http.MethodPost, "/clientes", strings.NewReader(tt.body)))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestListar_RespeitaTenant(t *testing.T) {
	h := &Handler{Repository: novoFakeRepo(
		cliente(1, "Bistrô", "12.345.678/0001-90"),
		cliente(2, "Cantina", "98.765.432/0001-10"),
	)}

	tests := []struct {
		name   string
		sessao auth.Sessao
		want   int
	}{
		{"admin vê todos", auth.Sessao{Papel: auth.PapelAdmin}, 2},
		{"cliente vê o próprio", auth.Sessao{Papel: auth.PapelCliente, ClienteID: uintPtr(2)}, 1},
		{"cliente sem vínculo", auth.Sessao{Papel: auth.PapelCliente}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/clientes", nil)
			r = r.WithContext(auth.ComSessao(r.Context(), tt.sessao))
			w := httptest.NewRecorder()
			h.Listar(w, r)

			var got []Cliente
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAtualizar(t *testing.T) {
	repo := novoFakeRepo(cliente(1, "Bistrô", "12.345.678/0001-90"))
	h := &Handler{Repository: repo}

	body := `{"nome":"Bistrô do Porto","cnpj":"12.345.678/0001-90","cidade":"Recife","ativo":false}`
	r := httptest.NewRequest(http.MethodPut, "/clientes/1", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	h.Atualizar(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	c := repo.clientes[1]
	if c.Nome != "Bistrô do Porto" || c.Cidade != "Recife" || c.Ativo {
		t.Errorf("cliente = %+v", c)
	}
}

func TestBuscarPorID_NaoEncontrado(t *testing.T) {
	h := &Handler{Repository: novoFakeRepo()}
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/clientes/9", nil), map[string]string{"id": "9"})
	w := httptest.NewRecorder()
	h.BuscarPorID(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
