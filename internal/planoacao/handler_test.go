package planoacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type fakeRepo struct {
	planos map[uint]*PlanoAcao
	proxID uint
}

func (f *fakeRepo) Listar(_ *gorm.DB, clienteID uint, status string) ([]PlanoAcao, error) {
	var out []PlanoAcao
	for _, p := range f.planos {
		if p.ClienteID == clienteID && (status == "" || p.Status == status) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) Buscar(_ *gorm.DB, clienteID, id uint) (*PlanoAcao, error) {
	p, ok := f.planos[id]
	if !ok || p.ClienteID != clienteID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) Salvar(_ *gorm.DB, p *PlanoAcao) error {
	if p.ID == 0 {
		f.proxID++
		p.ID = f.proxID
	}
	cp := *p
	f.planos[p.ID] = &cp
	return nil
}

func (f *fakeRepo) AtualizarStatus(db *gorm.DB, p *PlanoAcao, status string, agora time.Time) error {
	aplicarStatus(p, status, agora)
	return f.Salvar(db, p)
}

func (f *fakeRepo) Deletar(_ *gorm.DB, p *PlanoAcao) error {
	delete(f.planos, p.ID)
	return nil
}

// fakeScorecard conhece a avaliação 10 do cliente 3 e o critério 7
type fakeScorecard struct {
	scorecard.Repository
}

func (fakeScorecard) BuscarAvaliacao(_ *gorm.DB, clienteID, id uint) (*scorecard.Avaliacao, error) {
	if clienteID != 3 || id != 10 {
		return nil, gorm.ErrRecordNotFound
	}
	return &scorecard.Avaliacao{ID: 10, ClienteID: 3}, nil
}

func (fakeScorecard) ListarAreas(_ *gorm.DB) ([]scorecard.Area, error) {
	return []scorecard.Area{{ID: 1, Criterios: []scorecard.Criterio{{ID: 7, AreaID: 1}}}}, nil
}

var agoraFixo = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func novoHandler() (*Handler, *fakeRepo) {
	repo := &fakeRepo{planos: map[uint]*PlanoAcao{}}
	return &Handler{
		Repository: repo,
		Scorecard:  fakeScorecard{},
		Agora:      func() time.Time { return agoraFixo },
	}, repo
}

func req(method, body string, vars map[string]string) *http.Request {
	return mux.SetURLVars(httptest.NewRequest(method, "/", strings.NewReader(body)), vars)
}

func TestValidarTransicao(t *testing.T) {
	tests := []struct {
		de, para string
		wantErr  bool
		conflito bool
	}{
		{StatusPendente, StatusEmAndamento, false, false},
		{StatusEmAndamento, StatusConcluida, false, false},
		{StatusCancelada, StatusPendente, false, false},
		{StatusConcluida, StatusConcluida, false, false},
		{StatusConcluida, StatusPendente, true, true},
		{StatusConcluida, StatusCancelada, true, true},
		{StatusPendente, "Pago", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.de+"->"+tt.para, func(t *testing.T) {
			err := ValidarTransicao(tt.de, tt.para)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrTransicaoInvalida) != tt.conflito {
				t.Errorf("ErrTransicaoInvalida = %v, want %v", errors.Is(err, ErrTransicaoInvalida), tt.conflito)
			}
		})
	}
}

func TestCriar_ComecaPendente(t *testing.T) {
	h, repo := novoHandler()
	body := `{"titulo":"Revisar fichas técnicas","responsavel":"Chef","prazo":"2026-11-30T00:00:00Z","criterioId":7}`
	w := httptest.NewRecorder()
	h.Criar(w, req(http.MethodPost, body, map[string]string{"id": "3"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	p := repo.planos[1]
	if p.Status != StatusPendente || p.ClienteID != 3 || p.CriterioID == nil || *p.CriterioID != 7 {
		t.Errorf("plano salvo = %+v", p)
	}

	w = httptest.NewRecorder()
	h.Criar(w, req(http.MethodPost, `{"descricao":"sem título"}`, map[string]string{"id": "3"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("sem título: status = %d, want 400", w.Code)
	}
}

func TestCriar_ReferenciasDoCliente(t *testing.T) {
	tests := []struct {
		name    string
		cliente string
		body    string
		want    int
		campo   string
	}{
		{"avaliação do cliente", "3", `{"titulo":"x","avaliacaoId":10,"criterioId":7}`, http.StatusCreated, ""},
		{"avaliação de outro cliente", "4", `{"titulo":"x","avaliacaoId":10}`, http.StatusBadRequest, "avaliacaoId"},
		{"avaliação inexistente", "3", `{"titulo":"x","avaliacaoId":4242}`, http.StatusBadRequest, "avaliacaoId"},
		{"critério inexistente", "3", `{"titulo":"x","criterioId":9999}`, http.StatusBadRequest, "criterioId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := novoHandler()
			w := httptest.NewRecorder()
			h.Criar(w, req(http.MethodPost, tt.body, map[string]string{"id": tt.cliente}))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.campo == "" {
				return
			}
			var erros map[string]string
			if err := json.NewDecoder(w.Body).Decode(&erros); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if erros[tt.campo] == "" {
				t.Errorf("esperava erro em %s, got %v", tt.campo, erros)
			}
			if len(repo.planos) != 0 {
				t.Error("plano com referência inválida não pode ser gravado")
			}
		})
	}
}

func TestAtualizar_AvaliacaoDeOutroCliente(t *testing.T) {
	h, repo := novoHandler()
	_ = repo.Salvar(nil, &PlanoAcao{ClienteID: 4, Titulo: "a", Status: StatusPendente})

	w := httptest.NewRecorder()
	h.Atualizar(w, req(http.MethodPut, `{"titulo":"a","avaliacaoId":10}`, map[string]string{"id": "4", "pid": "1"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if repo.planos[1].AvaliacaoID != nil {
		t.Error("avaliação de outro cliente não pode ser vinculada")
	}
}

func TestAtualizarStatus_DataConclusao(t *testing.T) {
	h, repo := novoHandler()
	_ = repo.Salvar(nil, &PlanoAcao{ClienteID: 3, Titulo: "Inventário semanal", Status: StatusPendente})
	vars := map[string]string{"id": "3", "pid": "1"}

	patch := func(status string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.AtualizarStatus(w, req(http.MethodPatch, `{"status":"`+status+`"}`, vars))
		return w
	}

	if w := patch(StatusEmAndamento); w.Code != http.StatusOK {
		t.Fatalf("em andamento: status = %d (%s)", w.Code, w.Body.String())
	}
	if repo.planos[1].DataConclusao != nil {
		t.Error("data de conclusão não deveria existir antes de concluir")
	}

	w := patch(StatusConcluida)
	if w.Code != http.StatusOK {
		t.Fatalf("concluída: status = %d (%s)", w.Code, w.Body.String())
	}
	var resp PlanoAcao
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DataConclusao == nil || !resp.DataConclusao.Equal(agoraFixo) {
		t.Errorf("dataConclusao = %v, want %v", resp.DataConclusao, agoraFixo)
	}

	if w := patch(StatusPendente); w.Code != http.StatusConflict {
		t.Errorf("reabrir concluído: status = %d, want 409", w.Code)
	}
	if w := patch("Pago"); w.Code != http.StatusBadRequest {
		t.Errorf("status desconhecido: status = %d, want 400", w.Code)
	}
}

func TestListar_FiltraStatusETenant(t *testing.T) {
	h, repo := novoHandler()
	_ = repo.Salvar(nil, &PlanoAcao{ClienteID: 3, Titulo: "a", Status: StatusPendente})
	_ = repo.Salvar(nil, &PlanoAcao{ClienteID: 3, Titulo: "b", Status: StatusCancelada})
	_ = repo.Salvar(nil, &PlanoAcao{ClienteID: 4, Titulo: "c", Status: StatusPendente})

	tests := []struct {
		name  string
		url   string
		want  int
		itens int
	}{
		{"todos do cliente", "/?", http.StatusOK, 2},
		{"por status", "/?status=Pendente", http.StatusOK, 1},
		{"status inválido", "/?status=x", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, tt.url, nil), map[string]string{"id": "3"})
			w := httptest.NewRecorder()
			h.Listar(w, r)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want != http.StatusOK {
				return
			}
			var list []PlanoAcao
			if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(list) != tt.itens {
				t.Errorf("itens = %d, want %d", len(list), tt.itens)
			}
		})
	}
}

func TestDeletar_OutroCliente(t *testing.T) {
	h, repo := novoHandler()
	_ = repo.Salvar(nil, &PlanoAcao{ClienteID: 3, Titulo: "a", Status: StatusPendente})

	w := httptest.NewRecorder()
	h.Deletar(w, req(http.MethodDelete, "", map[string]string{"id": "4", "pid": "1"}))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if _, ok := repo.planos[1]; !ok {
		t.Error("plano de outro cliente não pode ser removido")
	}
}
