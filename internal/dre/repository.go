package dre

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Listar(db *gorm.DB, clienteID uint) ([]DRE, error)
	Buscar(db *gorm.DB, clienteID uint, competencia string) (*DRE, error)
	Salvar(db *gorm.DB, d *DRE) error
	Deletar(db *gorm.DB, d *DRE) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Listar devolve as DREs do cliente, competência mais recente primeiro
func (r *repositoryImpl) Listar(db *gorm.DB, clienteID uint) ([]DRE, error) {
	var list []DRE
	err := db.Where("cliente_id = ?", clienteID).Order("competencia DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Buscar(db *gorm.DB, clienteID uint, competencia string) (*DRE, error) {
	var d DRE
	if err := db.Where("cliente_id = ? AND competencia = ?", clienteID, competencia).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Salvar faz upsert por (cliente, competência)
func (r *repositoryImpl) Salvar(db *gorm.DB, d *DRE) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cliente_id"}, {Name: "competencia"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"receita_bruta", "impostos", "custos_variaveis", "custos_fixos", "quantidade_vendas", "updated_at",
		}),
	}).Create(d).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, d *DRE) error {
	return db.Delete(d).Error
}
