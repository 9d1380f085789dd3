package planoacao

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Listar(db *gorm.DB, clienteID uint, status string) ([]PlanoAcao, error)
	Buscar(db *gorm.DB, clienteID, id uint) (*PlanoAcao, error)
	Salvar(db *gorm.DB, p *PlanoAcao) error
	AtualizarStatus(db *gorm.DB, p *PlanoAcao, status string, agora time.Time) error
	Deletar(db *gorm.DB, p *PlanoAcao) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Listar ordena por prazo, planos sem prazo por último. status vazio traz todos.
func (r *repositoryImpl) Listar(db *gorm.DB, clienteID uint, status string) ([]PlanoAcao, error) {
	q := db.Where("cliente_id = ?", clienteID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []PlanoAcao
	err := q.Order("prazo ASC NULLS LAST, id").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Buscar(db *gorm.DB, clienteID, id uint) (*PlanoAcao, error) {
	var p PlanoAcao
	if err := db.Where("cliente_id = ?", clienteID).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *PlanoAcao) error {
	return db.Save(p).Error
}

// AtualizarStatus grava o status e ajusta data_conclusao:
// preenchida ao concluir, nula nos demais status.
func (r *repositoryImpl) AtualizarStatus(db *gorm.DB, p *PlanoAcao, status string, agora time.Time) error {
	aplicarStatus(p, status, agora)
	return db.Model(&PlanoAcao{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":         p.Status,
			"data_conclusao": p.DataConclusao,
		}).Error
}

func aplicarStatus(p *PlanoAcao, status string, agora time.Time) {
	if status == StatusConcluida {
		if p.Status != StatusConcluida || p.DataConclusao == nil {
			p.DataConclusao = &agora
		}
	} else {
		p.DataConclusao = nil
	}
	p.Status = status
}

func (r *repositoryImpl) Deletar(db *gorm.DB, p *PlanoAcao) error {
	return db.Delete(p).Error
}
