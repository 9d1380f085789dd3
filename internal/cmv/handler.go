package cmv

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Regras     Regras
}

func NewHandler(db *gorm.DB, regras Regras) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Regras:     regras,
	}
}

/* ============================== Insumos ============================== */

// GET /clientes/{id}/insumos
func (h *Handler) ListarInsumos(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListarInsumos(h.DB, clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "ListarInsumos", "listar", clienteID, err)
		http.Error(w, "erro ao listar insumos", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// POST /clientes/{id}/insumos
func (h *Handler) CriarInsumo(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	var req InsumoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	i := Insumo{
		ClienteID:        clienteID,
		Nome:             req.Nome,
		UnidadeCompra:    req.UnidadeCompra,
		PrecoCompra:      req.PrecoCompra,
		QuantidadeCompra: req.QuantidadeCompra,
	}
	if err := h.Repository.SalvarInsumo(h.DB, &i); err != nil {
		config.LogError(config.GetLogger(), "cmv", "CriarInsumo", "salvar", req.Nome, err)
		http.Error(w, "erro ao salvar insumo", http.StatusInternalServerError)
		return
	}
	i.CustoUnitario = i.CalcularCustoUnitario()
	utils.JSON(w, http.StatusCreated, i)
}

// PUT /clientes/{id}/insumos/{iid}
func (h *Handler) AtualizarInsumo(w http.ResponseWriter, r *http.Request) {
	i, ok := h.carregarInsumo(w, r)
	if !ok {
		return
	}
	var req InsumoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	i.Nome = req.Nome
	i.UnidadeCompra = req.UnidadeCompra
	i.PrecoCompra = req.PrecoCompra
	i.QuantidadeCompra = req.QuantidadeCompra
	if err := h.Repository.SalvarInsumo(h.DB, i); err != nil {
		config.LogError(config.GetLogger(), "cmv", "AtualizarInsumo", "salvar", i.ID, err)
		http.Error(w, "erro ao atualizar insumo", http.StatusInternalServerError)
		return
	}
	i.CustoUnitario = i.CalcularCustoUnitario()
	utils.JSON(w, http.StatusOK, i)
}

// DELETE /clientes/{id}/insumos/{iid}
// Insumo usado em alguma ficha não pode ser removido.
func (h *Handler) DeletarInsumo(w http.ResponseWriter, r *http.Request) {
	i, ok := h.carregarInsumo(w, r)
	if !ok {
		return
	}
	usos, err := h.Repository.ContarUsosInsumo(h.DB, i.ID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "DeletarInsumo", "contar usos", i.ID, err)
		http.Error(w, "erro ao excluir insumo", http.StatusInternalServerError)
		return
	}
	if usos > 0 {
		http.Error(w, fmt.Sprintf("insumo usado em %d ficha(s) técnica(s)", usos), http.StatusConflict)
		return
	}
	if err := h.Repository.DeletarInsumo(h.DB, i); err != nil {
		config.LogError(config.GetLogger(), "cmv", "DeletarInsumo", "deletar", i.ID, err)
		http.Error(w, "erro ao excluir insumo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) carregarInsumo(w http.ResponseWriter, r *http.Request) (*Insumo, bool) {
	clienteID, err1 := utils.IDParam(r, "id")
	iid, err2 := utils.IDParam(r, "iid")
	if err1 != nil || err2 != nil {
		http.Error(w, "IDs inválidos", http.StatusBadRequest)
		return nil, false
	}
	i, err := h.Repository.BuscarInsumo(h.DB, clienteID, iid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "insumo não encontrado para esse cliente", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "carregarInsumo", "buscar", iid, err)
		http.Error(w, "erro ao buscar insumo", http.StatusInternalServerError)
		return nil, false
	}
	return i, true
}

/* ============================== Fichas técnicas ============================== */

// GET /clientes/{id}/fichas
func (h *Handler) ListarFichas(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	fichas, err := h.Repository.ListarFichas(h.DB, clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "ListarFichas", "listar", clienteID, err)
		http.Error(w, "erro ao listar fichas técnicas", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, fichas)
}

// POST /clientes/{id}/fichas
func (h *Handler) CriarFicha(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	var req FichaRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	f := req.ficha(clienteID)
	h.salvarFicha(w, &f, http.StatusCreated)
}

// GET /clientes/{id}/fichas/{fid}
func (h *Handler) BuscarFicha(w http.ResponseWriter, r *http.Request) {
	f, ok := h.carregarFicha(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, f)
}

// PUT /clientes/{id}/fichas/{fid}
func (h *Handler) AtualizarFicha(w http.ResponseWriter, r *http.Request) {
	atual, ok := h.carregarFicha(w, r)
	if !ok {
		return
	}
	var req FichaRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	f := req.ficha(atual.ClienteID)
	f.ID = atual.ID
	f.CreatedAt = atual.CreatedAt
	h.salvarFicha(w, &f, http.StatusOK)
}

// salvarFicha recusa linhas que apontam para insumos de outro cliente
func (h *Handler) salvarFicha(w http.ResponseWriter, f *FichaTecnica, status int) {
	custos, err := h.Repository.CustosUnitarios(h.DB, f.ClienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "salvarFicha", "buscar insumos", f.ClienteID, err)
		http.Error(w, "erro ao salvar ficha técnica", http.StatusInternalServerError)
		return
	}
	for _, it := range f.Itens {
		if _, ok := custos[it.InsumoID]; !ok {
			utils.JSON(w, http.StatusBadRequest, map[string]string{
				"itens": fmt.Sprintf("insumo %d não encontrado para esse cliente", it.InsumoID),
			})
			return
		}
	}

	if err := h.Repository.SalvarFicha(h.DB, f); err != nil {
		config.LogError(config.GetLogger(), "cmv", "salvarFicha", "salvar", f.Nome, err)
		http.Error(w, "erro ao salvar ficha técnica", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, status, FichaComCusto{
		FichaTecnica: *f,
		Custo:        h.Regras.CalcularCusto(*f, f.Itens, custos),
	})
}

// DELETE /clientes/{id}/fichas/{fid}
func (h *Handler) DeletarFicha(w http.ResponseWriter, r *http.Request) {
	f, ok := h.carregarFicha(w, r)
	if !ok {
		return
	}
	if err := h.Repository.DeletarFicha(h.DB, f); err != nil {
		config.LogError(config.GetLogger(), "cmv", "DeletarFicha", "deletar", f.ID, err)
		http.Error(w, "erro ao excluir ficha técnica", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /clientes/{id}/fichas/{fid}/custo
func (h *Handler) CustoFicha(w http.ResponseWriter, r *http.Request) {
	f, ok := h.carregarFicha(w, r)
	if !ok {
		return
	}
	custos, err := h.Repository.CustosUnitarios(h.DB, f.ClienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "CustoFicha", "buscar insumos", f.ID, err)
		http.Error(w, "erro ao calcular custo", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, h.Regras.CalcularCusto(*f, f.Itens, custos))
}

func (h *Handler) carregarFicha(w http.ResponseWriter, r *http.Request) (*FichaTecnica, bool) {
	clienteID, err1 := utils.IDParam(r, "id")
	fid, err2 := utils.IDParam(r, "fid")
	if err1 != nil || err2 != nil {
		http.Error(w, "IDs inválidos", http.StatusBadRequest)
		return nil, false
	}
	f, err := h.Repository.BuscarFicha(h.DB, clienteID, fid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "ficha técnica não encontrada para esse cliente", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "carregarFicha", "buscar", fid, err)
		http.Error(w, "erro ao buscar ficha técnica", http.StatusInternalServerError)
		return nil, false
	}
	return f, true
}

/* ============================== Painéis ============================== */

// CustosDoCliente calcula o custo de todas as fichas do cliente
func (h *Handler) CustosDoCliente(clienteID uint) ([]Custo, error) {
	fichas, err := h.Repository.ListarFichas(h.DB, clienteID)
	if err != nil {
		return nil, err
	}
	custos, err := h.Repository.CustosUnitarios(h.DB, clienteID)
	if err != nil {
		return nil, err
	}
	out := make([]Custo, 0, len(fichas))
	for _, f := range fichas {
		out = append(out, h.Regras.CalcularCusto(f, f.Itens, custos))
	}
	return out, nil
}

// GET /clientes/{id}/cmv
func (h *Handler) Painel(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	custos, err := h.CustosDoCliente(clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "Painel", "calcular", clienteID, err)
		http.Error(w, "erro ao calcular CMV", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, ResumirPortfolio(custos))
}

// GET /clientes/{id}/engenharia-cardapio
func (h *Handler) EngenhariaCardapio(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	custos, err := h.CustosDoCliente(clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "cmv", "EngenhariaCardapio", "calcular", clienteID, err)
		http.Error(w, "erro ao calcular engenharia de cardápio", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, h.Regras.ClassificarCardapio(custos))
}
