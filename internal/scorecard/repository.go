package scorecard

import (
	"errors"
	"time"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAvaliacaoConcluida = errors.New("avaliação já concluída")

type Repository interface {
	ListarAreas(db *gorm.DB) ([]Area, error)
	ListarAvaliacoes(db *gorm.DB, clienteID uint) ([]Avaliacao, error)
	BuscarAvaliacao(db *gorm.DB, clienteID, id uint) (*Avaliacao, error)
	BuscarRascunho(db *gorm.DB, clienteID uint) (*Avaliacao, error)
	CriarAvaliacao(db *gorm.DB, a *Avaliacao) error
	ListarPontuacoes(db *gorm.DB, avaliacaoID uint) ([]Pontuacao, error)
	SalvarPontuacoes(db *gorm.DB, avaliacaoID uint, pontuacoes []Pontuacao) error
	Finalizar(db *gorm.DB, a *Avaliacao, faixas TabelaFaixas) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarAreas(db *gorm.DB) ([]Area, error) {
	var areas []Area
	err := db.
		Preload("Criterios", func(db *gorm.DB) *gorm.DB { return db.Order("ordem") }).
		Order("ordem").
		Find(&areas).Error
	return areas, err
}

// ListarAvaliacoes devolve o histórico do cliente, mais recente primeiro
func (r *repositoryImpl) ListarAvaliacoes(db *gorm.DB, clienteID uint) ([]Avaliacao, error) {
	var list []Avaliacao
	err := db.Where("cliente_id = ?", clienteID).Order("data DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarAvaliacao(db *gorm.DB, clienteID, id uint) (*Avaliacao, error) {
	var a Avaliacao
	if err := db.Where("cliente_id = ?", clienteID).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) BuscarRascunho(db *gorm.DB, clienteID uint) (*Avaliacao, error) {
	var a Avaliacao
	if err := db.Where("cliente_id = ? AND status = ?", clienteID, StatusRascunho).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) CriarAvaliacao(db *gorm.DB, a *Avaliacao) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) ListarPontuacoes(db *gorm.DB, avaliacaoID uint) ([]Pontuacao, error) {
	var list []Pontuacao
	err := db.Where("avaliacao_id = ?", avaliacaoID).Order("criterio_id").Find(&list).Error
	return list, err
}

// SalvarPontuacoes grava as notas com upsert por (avaliação, critério).
// A avaliação é travada na transação para não receber notas depois de concluída.
func (r *repositoryImpl) SalvarPontuacoes(db *gorm.DB, avaliacaoID uint, pontuacoes []Pontuacao) error {
	if len(pontuacoes) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var a Avaliacao
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, avaliacaoID).Error; err != nil {
			return err
		}
		if a.Concluida() {
			return ErrAvaliacaoConcluida
		}

		for i := range pontuacoes {
			pontuacoes[i].AvaliacaoID = avaliacaoID
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "avaliacao_id"}, {Name: "criterio_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"pontos", "updated_at"}),
		}).Create(&pontuacoes).Error
	})
}

// Finalizar recalcula o total no banco e grava total, classificação e status.
// Este é o valor oficial da avaliação.
func (r *repositoryImpl) Finalizar(db *gorm.DB, a *Avaliacao, faixas TabelaFaixas) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(a, a.ID).Error; err != nil {
			return err
		}
		if a.Concluida() {
			return ErrAvaliacaoConcluida
		}

		total, err := somarPontos(tx, a.ID)
		if err != nil {
			return err
		}
		total, fora := Limitar(total)
		if fora {
			config.GetLogger().WithFields(logrus.Fields{
				"module":      "scorecard",
				"funcName":    "Finalizar",
				"avaliacaoId": a.ID,
			}).Warn("soma das notas fora de 0..1000, valor limitado")
		}

		agora := time.Now()
		a.Status = StatusConcluida
		a.PontuacaoTotal = total
		a.Classificacao = faixas.Classificar(total).Codigo
		a.ConcluidaEm = &agora
		return tx.Model(&Avaliacao{}).
			Where("id = ?", a.ID).
			Updates(map[string]interface{}{
				"status":          a.Status,
				"pontuacao_total": a.PontuacaoTotal,
				"classificacao":   a.Classificacao,
				"concluida_em":    a.ConcluidaEm,
			}).Error
	})
}

func somarPontos(db *gorm.DB, avaliacaoID uint) (int, error) {
	var total int
	err := db.Model(&Pontuacao{}).
		Where("avaliacao_id = ?", avaliacaoID).
		Select("COALESCE(SUM(pontos), 0)").
		Scan(&total).Error
	return total, err
}
