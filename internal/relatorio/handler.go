package relatorio

import (
	"net/http"

	"github.com/HubGAQ/api-gaq/internal/cmv"
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/scorecard"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"github.com/xuri/excelize/v2"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Scorecard *scorecard.Handler
	CMV       *cmv.Handler
}

func NewHandler(s *scorecard.Handler, c *cmv.Handler) *Handler {
	return &Handler{Scorecard: s, CMV: c}
}

// GET /clientes/{id}/avaliacoes/{aid}/exportar
func (h *Handler) ExportarAvaliacao(w http.ResponseWriter, r *http.Request) {
	a, ok := h.Scorecard.CarregarAvaliacao(w, r)
	if !ok {
		return
	}
	res, err := h.Scorecard.Resultado(r.Context(), a)
	if err != nil {
		config.LogError(config.GetLogger(), "relatorio", "ExportarAvaliacao", "calcular", a.ID, err)
		http.Error(w, "erro ao calcular avaliação", http.StatusInternalServerError)
		return
	}
	// avaliação concluída vale pelo total gravado na finalização
	if a.Concluida() {
		res.Total = a.PontuacaoTotal
		res.Faixa = h.Scorecard.Faixas.Classificar(a.PontuacaoTotal)
	}

	f, err := PlanilhaAvaliacao(*a, res)
	if err != nil {
		config.LogError(config.GetLogger(), "relatorio", "ExportarAvaliacao", "gerar planilha", a.ID, err)
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}
	escrever(w, f, nomeArquivo("avaliacao", a.ClienteID, a.ID))
}

// GET /clientes/{id}/fichas/exportar
func (h *Handler) ExportarFichas(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	custos, err := h.CMV.CustosDoCliente(clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "relatorio", "ExportarFichas", "calcular", clienteID, err)
		http.Error(w, "erro ao calcular CMV", http.StatusInternalServerError)
		return
	}
	f, err := PlanilhaFichas(h.CMV.Regras.ClassificarCardapio(custos))
	if err != nil {
		config.LogError(config.GetLogger(), "relatorio", "ExportarFichas", "gerar planilha", clienteID, err)
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}
	escrever(w, f, nomeArquivo("fichas", clienteID, 0))
}

func escrever(w http.ResponseWriter, f *excelize.File, nome string) {
	defer f.Close()
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", "attachment; filename="+nome)
	if err := f.Write(w); err != nil {
		config.LogError(config.GetLogger(), "relatorio", "escrever", "gravar resposta", nome, err)
	}
}
