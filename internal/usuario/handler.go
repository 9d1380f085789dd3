package usuario

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/HubGAQ/api-gaq/internal/auth"
	"github.com/HubGAQ/api-gaq/internal/cliente"
	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Clientes   cliente.Repository
	// EmitirTokens gera access + refresh no login
	EmitirTokens func(w http.ResponseWriter, s auth.Sessao) (auth.TokenResponse, error)
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Clientes:   cliente.NewRepository(),
		EmitirTokens: func(w http.ResponseWriter, s auth.Sessao) (auth.TokenResponse, error) {
			return auth.IssueTokensOnLogin(db, w, s)
		},
	}
}

func sessaoDoUsuario(u *Usuario) auth.Sessao {
	return auth.Sessao{UsuarioID: u.ID, Papel: u.Papel, ClienteID: u.ClienteID}
}

// Login troca email e senha por um access token; o refresh vai no cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil || !utils.CheckSenha(u.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	tokens, err := h.EmitirTokens(w, sessaoDoUsuario(u))
	if err != nil {
		config.LogError(config.GetLogger(), "usuario", "Login", "emitir tokens", u.ID, err)
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, tokens)
}

// CriarUsuario cadastra um usuário. Sem senha informada, gera uma temporária
// e marca a troca obrigatória no primeiro acesso.
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var req CriarUsuarioRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if !h.emailDisponivel(w, req.Email, 0) {
		return
	}
	if req.Papel == auth.PapelCliente && !h.clienteExiste(w, *req.ClienteID) {
		return
	}

	senha, temporaria := req.Senha, ""
	if senha == "" {
		var err error
		if temporaria, err = utils.GerarSenhaTemporaria(); err != nil {
			http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
			return
		}
		senha = temporaria
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:                  req.Nome,
		Email:                 req.Email,
		Telefone:              req.Telefone,
		Senha:                 hash,
		Papel:                 req.Papel,
		PrecisaRedefinirSenha: temporaria != "",
	}
	if req.Papel == auth.PapelCliente {
		u.ClienteID = req.ClienteID
	}

	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		config.LogError(config.GetLogger(), "usuario", "CriarUsuario", "salvar", req.Email, err)
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusCreated, CriarUsuarioResponse{Usuario: u, SenhaTemporaria: temporaria})
}

// ListarUsuarios aceita ?clienteId= para filtrar os usuários de um cliente
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	var (
		usuarios []Usuario
		err      error
	)
	if v := r.URL.Query().Get("clienteId"); v != "" {
		var id uint64
		if id, err = strconv.ParseUint(v, 10, 32); err != nil {
			http.Error(w, "clienteId inválido", http.StatusBadRequest)
			return
		}
		usuarios, err = h.Repository.ListarPorCliente(h.DB, uint(id))
	} else {
		usuarios, err = h.Repository.ListarTodos(h.DB)
	}
	if err != nil {
		config.LogError(config.GetLogger(), "usuario", "ListarUsuarios", "listar", nil, err)
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, usuarios)
}

// BuscarPorID retorna um usuário; não-admin só enxerga a si mesmo
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	u, ok := h.carregarPermitido(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

// AtualizarUsuario altera dados cadastrais e, opcionalmente, a senha
func (h *Handler) AtualizarUsuario(w http.ResponseWriter, r *http.Request) {
	u, ok := h.carregarPermitido(w, r)
	if !ok {
		return
	}

	var req AtualizarUsuarioRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	if !h.emailDisponivel(w, req.Email, u.ID) {
		return
	}

	u.Nome = req.Nome
	u.Email = req.Email
	u.Telefone = req.Telefone
	if req.Senha != "" {
		hash, err := utils.HashSenha(req.Senha)
		if err != nil {
			http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
			return
		}
		u.Senha = hash
		u.PrecisaRedefinirSenha = false
	}

	if err := h.Repository.Salvar(h.DB, u); err != nil {
		config.LogError(config.GetLogger(), "usuario", "AtualizarUsuario", "salvar", u.ID, err)
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

// DeletarUsuario remove um usuário (soft delete)
func (h *Handler) DeletarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Deletar(h.DB, id); err != nil {
		config.LogError(config.GetLogger(), "usuario", "DeletarUsuario", "deletar", id, err)
		http.Error(w, "erro ao excluir usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.SessaoDe(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB, s.UsuarioID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	utils.JSON(w, http.StatusOK, u)
}

// emailDisponivel responde 409 quando o email já pertence a outro usuário
func (h *Handler) emailDisponivel(w http.ResponseWriter, email string, proprioID uint) bool {
	outro, err := h.Repository.BuscarPorEmail(h.DB, email)
	if err == nil && outro.ID != proprioID {
		http.Error(w, "email já cadastrado", http.StatusConflict)
		return false
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		config.LogError(config.GetLogger(), "usuario", "emailDisponivel", "buscar", email, err)
		http.Error(w, "erro ao buscar usuário", http.StatusInternalServerError)
		return false
	}
	return true
}

func (h *Handler) clienteExiste(w http.ResponseWriter, clienteID uint) bool {
	_, err := h.Clientes.BuscarPorID(h.DB, clienteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSON(w, http.StatusBadRequest, map[string]string{
			"clienteId": fmt.Sprintf("cliente %d não existe", clienteID),
		})
		return false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "usuario", "clienteExiste", "buscar cliente", clienteID, err)
		http.Error(w, "erro ao buscar cliente", http.StatusInternalServerError)
		return false
	}
	return true
}

func (h *Handler) carregarPermitido(w http.ResponseWriter, r *http.Request) (*Usuario, bool) {
	s, _ := auth.SessaoDe(r.Context())

	id, err := utils.IDParam(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	if !s.IsAdmin() && id != s.UsuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return nil, false
	}

	u, err := h.Repository.BuscarPorID(h.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		config.LogError(config.GetLogger(), "usuario", "carregarPermitido", "buscar", id, err)
		http.Error(w, "erro ao buscar usuário", http.StatusInternalServerError)
		return nil, false
	}
	return u, true
}
