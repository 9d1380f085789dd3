package planoacao

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Scorecard  scorecard.Repository
	Agora      func() time.Time
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Scorecard:  scorecard.NewRepository(),
		Agora:      time.Now,
	}
}

// GET /clientes/{id}/planos-acao?status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")
	if status != "" && !StatusValido(status) {
		http.Error(w, "status inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.Listar(h.DB, clienteID, status)
	if err != nil {
		config.LogError(config.GetLogger(), "planoacao", "Listar", "listar", clienteID, err)
		http.Error(w, "erro ao listar planos de ação", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []PlanoAcao{}
	}
	utils.JSON(w, http.StatusOK, list)
}

// POST /clientes/{id}/planos-acao
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	var req PlanoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	if !h.validarReferencias(w, clienteID, req) {
		return
	}

	p := PlanoAcao{ClienteID: clienteID, Status: StatusPendente}
	req.aplicar(&p)
	if err := h.Repository.Salvar(h.DB, &p); err != nil {
		config.LogError(config.GetLogger(), "planoacao", "Criar", "salvar", clienteID, err)
		http.Error(w, "erro ao salvar plano de ação", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

// PUT /clientes/{id}/planos-acao/{pid}
// Não altera o status; para isso existe o PATCH .../status.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req PlanoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if !h.validarReferencias(w, p.ClienteID, req) {
		return
	}
	req.aplicar(p)
	if err := h.Repository.Salvar(h.DB, p); err != nil {
		config.LogError(config.GetLogger(), "planoacao", "Atualizar", "salvar", p.ID, err)
		http.Error(w, "erro ao atualizar plano de ação", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// PATCH /clientes/{id}/planos-acao/{pid}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if err := ValidarTransicao(p.Status, req.Status); err != nil {
		if errors.Is(err, ErrTransicaoInvalida) {
			http.Error(w, "Não é permitido alterar o status de um plano já concluído", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.AtualizarStatus(h.DB, p, req.Status, h.Agora()); err != nil {
		config.LogError(config.GetLogger(), "planoacao", "AtualizarStatus", "atualizar", p.ID, err)
		http.Error(w, "erro ao atualizar status", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// DELETE /clientes/{id}/planos-acao/{pid}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	p, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if err := h.Repository.Deletar(h.DB, p); err != nil {
		config.LogError(config.GetLogger(), "planoacao", "Deletar", "deletar", p.ID, err)
		http.Error(w, "erro ao excluir plano de ação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validarReferencias garante que a avaliação é do próprio cliente e que o
// critério existe no catálogo. Em caso de erro já respondeu e devolve false.
func (h *Handler) validarReferencias(w http.ResponseWriter, clienteID uint, req PlanoRequest) bool {
	if req.AvaliacaoID != nil {
		_, err := h.Scorecard.BuscarAvaliacao(h.DB, clienteID, *req.AvaliacaoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSON(w, http.StatusBadRequest, map[string]string{
				"avaliacaoId": fmt.Sprintf("avaliação %d não existe para o cliente", *req.AvaliacaoID),
			})
			return false
		}
		if err != nil {
			config.LogError(config.GetLogger(), "planoacao", "validarReferencias", "buscar avaliação", *req.AvaliacaoID, err)
			http.Error(w, "erro ao buscar avaliação", http.StatusInternalServerError)
			return false
		}
	}

	if req.CriterioID != nil {
		areas, err := h.Scorecard.ListarAreas(h.DB)
		if err != nil {
			config.LogError(config.GetLogger(), "planoacao", "validarReferencias", "listar critérios", *req.CriterioID, err)
			http.Error(w, "erro ao buscar critérios", http.StatusInternalServerError)
			return false
		}
		for _, c := range scorecard.CriteriosDe(areas) {
			if c.ID == *req.CriterioID {
				return true
			}
		}
		utils.JSON(w, http.StatusBadRequest, map[string]string{
			"criterioId": fmt.Sprintf("critério %d não existe", *req.CriterioID),
		})
		return false
	}
	return true
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*PlanoAcao, bool) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return nil, false
	}
	id, err := utils.IDParam(r, "pid")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	p, err := h.Repository.Buscar(h.DB, clienteID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "plano de ação não encontrado", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "planoacao", "carregar", "buscar", id, err)
		http.Error(w, "erro ao buscar plano de ação", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}
