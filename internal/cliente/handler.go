package cliente

import (
	"errors"
	"net/http"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// POST /clientes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ClienteRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	if _, err := h.Repository.BuscarPorCNPJ(h.DB, req.CNPJ); err == nil {
		http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
		return
	}

	c := Cliente{Ativo: true}
	req.aplicar(&c)
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		config.LogError(config.GetLogger(), "cliente", "Criar", "salvar", req.CNPJ, err)
		http.Error(w, "erro ao salvar cliente", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusCreated, c)
}

// GET /clientes
// Admin vê toda a carteira; usuário cliente recebe só o próprio cadastro.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	s, _ := auth.SessaoDe(r.Context())
	if !s.IsAdmin() {
		if s.ClienteID == nil {
			utils.JSON(w, http.StatusOK, []Cliente{})
			return
		}
		c, err := h.Repository.BuscarPorID(h.DB, *s.ClienteID)
		if err != nil {
			utils.JSON(w, http.StatusOK, []Cliente{})
			return
		}
		utils.JSON(w, http.StatusOK, []Cliente{*c})
		return
	}

	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		config.LogError(config.GetLogger(), "cliente", "Listar", "listar", nil, err)
		http.Error(w, "erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	c, ok := h.carregar(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

// PUT /clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.carregar(w, r)
	if !ok {
		return
	}

	var req ClienteRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if req.CNPJ != c.CNPJ {
		if outro, err := h.Repository.BuscarPorCNPJ(h.DB, req.CNPJ); err == nil && outro.ID != c.ID {
			http.Error(w, "CNPJ já cadastrado", http.StatusConflict)
			return
		}
	}

	req.aplicar(c)
	if err := h.Repository.Salvar(h.DB, c); err != nil {
		config.LogError(config.GetLogger(), "cliente", "Atualizar", "salvar", c.ID, err)
		http.Error(w, "erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

// DELETE /clientes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		config.LogError(config.GetLogger(), "cliente", "Deletar", "deletar", id, err)
		http.Error(w, "erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*Cliente, bool) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.Repository.BuscarPorID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "cliente não encontrado", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "cliente", "carregar", "buscar", id, err)
		http.Error(w, "erro ao buscar cliente", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}
