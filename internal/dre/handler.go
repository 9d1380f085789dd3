package dre

import (
	"errors"
	"net/http"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"github.com/gorilla/mux"
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

// GET /clientes/{id}/dres
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.Listar(h.DB, clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "dre", "Listar", "listar", clienteID, err)
		http.Error(w, "erro ao listar DREs", http.StatusInternalServerError)
		return
	}
	out := make([]DREComIndicadores, 0, len(list))
	for _, d := range list {
		out = append(out, ComIndicadores(d))
	}
	utils.JSON(w, http.StatusOK, out)
}

// GET /clientes/{id}/dres/{competencia}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	d, ok := h.carregar(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, ComIndicadores(*d))
}

// PUT /clientes/{id}/dres/{competencia}
func (h *Handler) Salvar(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	competencia := mux.Vars(r)["competencia"]
	if err := ValidarCompetencia(competencia); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req DRERequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	d := DRE{
		ClienteID:        clienteID,
		Competencia:      competencia,
		ReceitaBruta:     req.ReceitaBruta,
		Impostos:         req.Impostos,
		CustosVariaveis:  req.CustosVariaveis,
		CustosFixos:      req.CustosFixos,
		QuantidadeVendas: req.QuantidadeVendas,
	}
	if err := h.Repository.Salvar(h.DB, &d); err != nil {
		config.LogError(config.GetLogger(), "dre", "Salvar", "upsert", competencia, err)
		http.Error(w, "erro ao salvar DRE", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, ComIndicadores(d))
}

// DELETE /clientes/{id}/dres/{competencia}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	d, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if err := h.Repository.Deletar(h.DB, d); err != nil {
		config.LogError(config.GetLogger(), "dre", "Deletar", "deletar", d.ID, err)
		http.Error(w, "erro ao excluir DRE", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ============================== Simulações ============================== */

// POST /clientes/{id}/dres/{competencia}/simulacoes/preco
func (h *Handler) SimularPreco(w http.ResponseWriter, r *http.Request) {
	d, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req SimularPrecoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	utils.JSON(w, http.StatusOK, SimularPreco(*d, req.VariacaoPct))
}

// POST /clientes/{id}/dres/{competencia}/simulacoes/meta-cmv
func (h *Handler) SimularMetaCMV(w http.ResponseWriter, r *http.Request) {
	d, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req SimularMetaCMVRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	utils.JSON(w, http.StatusOK, SimularMetaCMV(*d, req.MetaPct))
}

// POST /clientes/{id}/dres/{competencia}/simulacoes/vendas-extras
func (h *Handler) SimularVendasExtras(w http.ResponseWriter, r *http.Request) {
	d, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req SimularVendasExtrasRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	utils.JSON(w, http.StatusOK, SimularVendasExtras(*d, req.UnidadesPorDia))
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*DRE, bool) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return nil, false
	}
	competencia := mux.Vars(r)["competencia"]
	if err := ValidarCompetencia(competencia); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	d, err := h.Repository.Buscar(h.DB, clienteID, competencia)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "DRE não encontrada para essa competência", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "dre", "carregar", "buscar", competencia, err)
		http.Error(w, "erro ao buscar DRE", http.StatusInternalServerError)
		return nil, false
	}
	return d, true
}
