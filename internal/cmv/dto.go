package cmv

import "github.com/shopspring/decimal"

// InsumoRequest é usado em POST/PUT /clientes/{id}/insumos
type InsumoRequest struct {
	Nome             string          `json:"nome" validate:"required,max=120"`
	UnidadeCompra    string          `json:"unidadeCompra" validate:"required,max=10"`
	PrecoCompra      decimal.Decimal `json:"precoCompra" validate:"gte=0"`
	QuantidadeCompra decimal.Decimal `json:"quantidadeCompra" validate:"gt=0"`
}

type ItemFichaRequest struct {
	InsumoID   uint            `json:"insumoId" validate:"required"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"gte=0"`
}

// FichaRequest é usado em POST/PUT /clientes/{id}/fichas
type FichaRequest struct {
	Nome       string             `json:"nome" validate:"required,max=120"`
	Categoria  string             `json:"categoria" validate:"omitempty,max=60"`
	PrecoVenda decimal.Decimal    `json:"precoVenda" validate:"gte=0"`
	Demanda    string             `json:"demanda" validate:"omitempty,oneof=alta normal baixa"`
	Itens      []ItemFichaRequest `json:"itens" validate:"dive"`
}

func (req FichaRequest) ficha(clienteID uint) FichaTecnica {
	f := FichaTecnica{
		ClienteID:  clienteID,
		Nome:       req.Nome,
		Categoria:  req.Categoria,
		PrecoVenda: req.PrecoVenda,
		Demanda:    NormalizarDemanda(req.Demanda),
	}
	for _, it := range req.Itens {
		f.Itens = append(f.Itens, ItemFicha{InsumoID: it.InsumoID, Quantidade: it.Quantidade})
	}
	return f
}

// FichaComCusto é a ficha acompanhada do cálculo
type FichaComCusto struct {
	FichaTecnica
	Custo Custo `json:"custo"`
}
