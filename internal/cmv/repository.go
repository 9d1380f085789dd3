package cmv

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	ListarInsumos(db *gorm.DB, clienteID uint) ([]Insumo, error)
	BuscarInsumo(db *gorm.DB, clienteID, id uint) (*Insumo, error)
	SalvarInsumo(db *gorm.DB, i *Insumo) error
	DeletarInsumo(db *gorm.DB, i *Insumo) error
	ContarUsosInsumo(db *gorm.DB, insumoID uint) (int64, error)
	CustosUnitarios(db *gorm.DB, clienteID uint) (map[uint]decimal.Decimal, error)

	ListarFichas(db *gorm.DB, clienteID uint) ([]FichaTecnica, error)
	BuscarFicha(db *gorm.DB, clienteID, id uint) (*FichaTecnica, error)
	SalvarFicha(db *gorm.DB, f *FichaTecnica) error
	DeletarFicha(db *gorm.DB, f *FichaTecnica) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarInsumos(db *gorm.DB, clienteID uint) ([]Insumo, error) {
	var list []Insumo
	err := db.Where("cliente_id = ?", clienteID).Order("nome").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarInsumo(db *gorm.DB, clienteID, id uint) (*Insumo, error) {
	var i Insumo
	if err := db.Where("cliente_id = ?", clienteID).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repositoryImpl) SalvarInsumo(db *gorm.DB, i *Insumo) error {
	return db.Save(i).Error
}

func (r *repositoryImpl) DeletarInsumo(db *gorm.DB, i *Insumo) error {
	return db.Delete(i).Error
}

func (r *repositoryImpl) ContarUsosInsumo(db *gorm.DB, insumoID uint) (int64, error) {
	var n int64
	err := db.Model(&ItemFicha{}).Where("insumo_id = ?", insumoID).Count(&n).Error
	return n, err
}

// CustosUnitarios mapeia insumo -> custo unitário, só com insumos do cliente
func (r *repositoryImpl) CustosUnitarios(db *gorm.DB, clienteID uint) (map[uint]decimal.Decimal, error) {
	insumos, err := r.ListarInsumos(db, clienteID)
	if err != nil {
		return nil, err
	}
	custos := make(map[uint]decimal.Decimal, len(insumos))
	for _, i := range insumos {
		custos[i.ID] = i.CalcularCustoUnitario()
	}
	return custos, nil
}

func (r *repositoryImpl) ListarFichas(db *gorm.DB, clienteID uint) ([]FichaTecnica, error) {
	var list []FichaTecnica
	err := db.Preload("Itens").Where("cliente_id = ?", clienteID).Order("categoria, nome").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarFicha(db *gorm.DB, clienteID, id uint) (*FichaTecnica, error) {
	var f FichaTecnica
	if err := db.Preload("Itens").Where("cliente_id = ?", clienteID).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// SalvarFicha grava a ficha e substitui todas as linhas numa transação
func (r *repositoryImpl) SalvarFicha(db *gorm.DB, f *FichaTecnica) error {
	return db.Transaction(func(tx *gorm.DB) error {
		itens := f.Itens
		f.Itens = nil
		if err := tx.Save(f).Error; err != nil {
			return err
		}
		if err := tx.Where("ficha_tecnica_id = ?", f.ID).Delete(&ItemFicha{}).Error; err != nil {
			return err
		}
		for i := range itens {
			itens[i].ID = 0
			itens[i].FichaTecnicaID = f.ID
		}
		if len(itens) > 0 {
			if err := tx.Create(&itens).Error; err != nil {
				return err
			}
		}
		f.Itens = itens
		return nil
	})
}

func (r *repositoryImpl) DeletarFicha(db *gorm.DB, f *FichaTecnica) error {
	return db.Select("Itens").Delete(f).Error
}
