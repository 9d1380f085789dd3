package scorecard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HubGAQ/api-gaq/internal/cache"
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/notificacao"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"gorm.io/gorm"
)

const (
	chaveCatalogo    = "scorecard:catalogo"
	ttlCatalogo      = time.Hour
	ttlLockRascunho  = 10 * time.Second
	timeoutNotificar = 10 * time.Second
)

// Notificador recebe o evento de avaliação concluída
type Notificador interface {
	AvaliacaoConcluida(ctx context.Context, e notificacao.AvaliacaoConcluida)
}

type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Cache       *cache.Redis
	Faixas      TabelaFaixas
	Notificador Notificador
}

func NewHandler(db *gorm.DB, c *cache.Redis, faixas TabelaFaixas, n Notificador) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Cache:       c,
		Faixas:      faixas,
		Notificador: n,
	}
}

// catalogo lê áreas e critérios, passando pelo cache quando disponível
func (h *Handler) catalogo(ctx context.Context) ([]Area, error) {
	var areas []Area
	if ok, err := h.Cache.GetObject(ctx, chaveCatalogo, &areas); err == nil && ok {
		return areas, nil
	} else if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "catalogo", "ler cache", chaveCatalogo, err)
	}

	areas, err := h.Repository.ListarAreas(h.DB)
	if err != nil {
		return nil, err
	}
	if err := h.Cache.SetObject(ctx, chaveCatalogo, areas, ttlCatalogo); err != nil {
		config.LogError(config.GetLogger(), "scorecard", "catalogo", "gravar cache", chaveCatalogo, err)
	}
	return areas, nil
}

// Removedor é a parte do cache usada para invalidar chaves
type Removedor interface {
	Remove(ctx context.Context, keys ...string) error
}

// InvalidarCatalogo descarta o catálogo em cache. Chamar depois de Semear.
func InvalidarCatalogo(ctx context.Context, c Removedor) error {
	return c.Remove(ctx, chaveCatalogo)
}

// GET /scorecard/areas
func (h *Handler) Catalogo(w http.ResponseWriter, r *http.Request) {
	areas, err := h.catalogo(r.Context())
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "Catalogo", "listar áreas", nil, err)
		http.Error(w, "erro ao buscar catálogo", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, areas)
}

// GET /scorecard/faixas
func (h *Handler) ListarFaixas(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Faixas)
}

// GET /clientes/{id}/avaliacoes
func (h *Handler) ListarAvaliacoes(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListarAvaliacoes(h.DB, clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "ListarAvaliacoes", "listar", clienteID, err)
		http.Error(w, "erro ao listar avaliações", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// POST /clientes/{id}/avaliacoes/rascunho
// Devolve o rascunho em andamento ou cria um novo (201).
func (h *Handler) ObterOuCriarRascunho(w http.ResponseWriter, r *http.Request) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}

	release, err := h.Cache.Lock(r.Context(), fmt.Sprintf("avaliacao:rascunho:%d", clienteID), ttlLockRascunho)
	if err != nil {
		config.GetLogger().WithField("clienteId", clienteID).Warn("lock do rascunho não obtido: " + err.Error())
	}
	defer release()

	a, criado, err := h.obterOuCriarRascunho(clienteID)
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "ObterOuCriarRascunho", "obter rascunho", clienteID, err)
		http.Error(w, "erro ao abrir avaliação", http.StatusInternalServerError)
		return
	}
	status := http.StatusOK
	if criado {
		status = http.StatusCreated
	}
	utils.JSON(w, status, a)
}

func (h *Handler) obterOuCriarRascunho(clienteID uint) (*Avaliacao, bool, error) {
	a, err := h.Repository.BuscarRascunho(h.DB, clienteID)
	if err == nil {
		return a, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	novo := &Avaliacao{ClienteID: clienteID, Status: StatusRascunho, Data: time.Now()}
	if err := h.Repository.CriarAvaliacao(h.DB, novo); err != nil {
		// outra requisição criou o rascunho primeiro; o índice único garante um só
		if existente, errBusca := h.Repository.BuscarRascunho(h.DB, clienteID); errBusca == nil {
			return existente, false, nil
		}
		return nil, false, err
	}
	return novo, true, nil
}

// GET /clientes/{id}/avaliacoes/{aid}
func (h *Handler) Detalhe(w http.ResponseWriter, r *http.Request) {
	a, ok := h.CarregarAvaliacao(w, r)
	if !ok {
		return
	}
	areas, err := h.catalogo(r.Context())
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "Detalhe", "listar áreas", a.ID, err)
		http.Error(w, "erro ao buscar catálogo", http.StatusInternalServerError)
		return
	}
	pontuacoes, err := h.Repository.ListarPontuacoes(h.DB, a.ID)
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "Detalhe", "listar pontuações", a.ID, err)
		http.Error(w, "erro ao buscar pontuações", http.StatusInternalServerError)
		return
	}

	total := a.PontuacaoTotal
	if !a.Concluida() {
		total = CalcularTotal(pontuacoes)
	}
	utils.JSON(w, http.StatusOK, DetalheAvaliacao{
		Avaliacao:  *a,
		Pontuacoes: pontuacoes,
		Areas:      CalcularPorArea(areas, CriteriosDe(areas), pontuacoes),
		Faixa:      h.Faixas.Classificar(total),
	})
}

// GET /clientes/{id}/avaliacoes/{aid}/previa
// Resultado calculado a partir das notas atuais, sem gravar nada.
func (h *Handler) Previa(w http.ResponseWriter, r *http.Request) {
	a, ok := h.CarregarAvaliacao(w, r)
	if !ok {
		return
	}
	res, err := h.Resultado(r.Context(), a)
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "Previa", "calcular", a.ID, err)
		http.Error(w, "erro ao calcular prévia", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

// Resultado monta o resumo local de uma avaliação
func (h *Handler) Resultado(ctx context.Context, a *Avaliacao) (Resultado, error) {
	areas, err := h.catalogo(ctx)
	if err != nil {
		return Resultado{}, err
	}
	pontuacoes, err := h.Repository.ListarPontuacoes(h.DB, a.ID)
	if err != nil {
		return Resultado{}, err
	}
	return h.Faixas.Resumir(areas, CriteriosDe(areas), pontuacoes), nil
}

// PUT /clientes/{id}/avaliacoes/{aid}/pontuacoes
func (h *Handler) SalvarPontuacoes(w http.ResponseWriter, r *http.Request) {
	a, ok := h.CarregarAvaliacao(w, r)
	if !ok {
		return
	}
	if a.Concluida() {
		http.Error(w, "avaliação concluída não pode ser alterada", http.StatusConflict)
		return
	}

	var req SalvarPontuacoesRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	areas, err := h.catalogo(r.Context())
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "SalvarPontuacoes", "listar áreas", a.ID, err)
		http.Error(w, "erro ao buscar catálogo", http.StatusInternalServerError)
		return
	}
	criterios := make(map[uint]bool)
	for _, c := range CriteriosDe(areas) {
		criterios[c.ID] = true
	}

	// um critério repetido no lote vale pela última ocorrência
	porCriterio := make(map[uint]int, len(req.Pontuacoes))
	ordem := make([]uint, 0, len(req.Pontuacoes))
	for _, p := range req.Pontuacoes {
		if !criterios[p.CriterioID] {
			utils.JSON(w, http.StatusBadRequest, map[string]string{
				"criterioId": fmt.Sprintf("critério %d não existe", p.CriterioID),
			})
			return
		}
		if _, visto := porCriterio[p.CriterioID]; !visto {
			ordem = append(ordem, p.CriterioID)
		}
		porCriterio[p.CriterioID] = *p.Pontos
	}
	pontuacoes := make([]Pontuacao, 0, len(ordem))
	for _, id := range ordem {
		pontuacoes = append(pontuacoes, Pontuacao{CriterioID: id, Pontos: porCriterio[id]})
	}

	err = h.Repository.SalvarPontuacoes(h.DB, a.ID, pontuacoes)
	if errors.Is(err, ErrAvaliacaoConcluida) {
		http.Error(w, "avaliação concluída não pode ser alterada", http.StatusConflict)
		return
	}
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "SalvarPontuacoes", "salvar", a.ID, err)
		http.Error(w, "erro ao salvar pontuações", http.StatusInternalServerError)
		return
	}

	res, err := h.Resultado(r.Context(), a)
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "SalvarPontuacoes", "calcular", a.ID, err)
		http.Error(w, "erro ao calcular prévia", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, res)
}

// POST /clientes/{id}/avaliacoes/{aid}/finalizar
func (h *Handler) Finalizar(w http.ResponseWriter, r *http.Request) {
	a, ok := h.CarregarAvaliacao(w, r)
	if !ok {
		return
	}

	err := h.Repository.Finalizar(h.DB, a, h.Faixas)
	if errors.Is(err, ErrAvaliacaoConcluida) {
		http.Error(w, "avaliação já concluída", http.StatusConflict)
		return
	}
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "Finalizar", "finalizar", a.ID, err)
		http.Error(w, "erro ao finalizar avaliação", http.StatusInternalServerError)
		return
	}

	if h.Notificador != nil {
		evento := notificacao.AvaliacaoConcluida{
			ClienteID:      a.ClienteID,
			AvaliacaoID:    a.ID,
			PontuacaoTotal: a.PontuacaoTotal,
			Classificacao:  a.Classificacao,
		}
		if a.ConcluidaEm != nil {
			evento.ConcluidaEm = *a.ConcluidaEm
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeoutNotificar)
			defer cancel()
			h.Notificador.AvaliacaoConcluida(ctx, evento)
		}()
	}
	utils.JSON(w, http.StatusOK, a)
}

// CarregarAvaliacao lê {id} e {aid} da rota e garante que a avaliação é do
// cliente. Em caso de erro já respondeu e devolve false.
func (h *Handler) CarregarAvaliacao(w http.ResponseWriter, r *http.Request) (*Avaliacao, bool) {
	clienteID, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return nil, false
	}
	aid, err := utils.IDParam(r, "aid")
	if err != nil {
		http.Error(w, "ID de avaliação inválido", http.StatusBadRequest)
		return nil, false
	}
	a, err := h.Repository.BuscarAvaliacao(h.DB, clienteID, aid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "avaliação não encontrada", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "scorecard", "CarregarAvaliacao", "buscar", aid, err)
		http.Error(w, "erro ao buscar avaliação", http.StatusInternalServerError)
		return nil, false
	}
	return a, true
}
