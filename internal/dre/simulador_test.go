package dre

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

// receita 100.000, impostos 8.000, CMV 32.000 (32%), fixos 40.000
func dreExemplo() DRE {
	return DRE{
		ClienteID:       1,
		Competencia:     "2026-09",
		ReceitaBruta:    d("100000"),
		Impostos:        d("8000"),
		CustosVariaveis: d("32000"),
		CustosFixos:     d("40000"),
	}
}

func TestCalcular(t *testing.T) {
	x := dreExemplo()
	ind := x.Calcular()

	if !ind.LucroBruto.Equal(d("60000")) {
		t.Errorf("LucroBruto = %s, want 60000", ind.LucroBruto)
	}
	if !ind.LucroOperacional.Equal(d("20000")) {
		t.Errorf("LucroOperacional = %s, want 20000", ind.LucroOperacional)
	}
	if !ind.MargemOperacionalPct.Decimal.Equal(d("20")) {
		t.Errorf("MargemOperacionalPct = %v, want 20", ind.MargemOperacionalPct)
	}
	if !ind.CMVPct.Decimal.Equal(d("32")) {
		t.Errorf("CMVPct = %v, want 32", ind.CMVPct)
	}
	if ind.TicketMedio.Valid {
		t.Error("TicketMedio sem quantidade de vendas deveria ser indefinido")
	}
}

func TestCalcular_SemReceita(t *testing.T) {
	x := DRE{CustosFixos: d("5000")}
	ind := x.Calcular()
	if ind.MargemOperacionalPct.Valid || ind.CMVPct.Valid {
		t.Errorf("percentuais deveriam ser indefinidos: %+v", ind)
	}
	if !ind.LucroOperacional.Equal(d("-5000")) {
		t.Errorf("LucroOperacional = %s", ind.LucroOperacional)
	}
}

func TestSimularPreco(t *testing.T) {
	tests := []struct {
		name       string
		variacao   string
		novoLucro  string
		deltaLucro string
	}{
		{"sem variação", "0", "20000", "0"},
		{"aumento de 10%", "10", "29200", "9200"},
		{"redução de 20%", "-20", "1600", "-18400"},
		{"aumento de 30%", "30", "47600", "27600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SimularPreco(dreExemplo(), d(tt.variacao))
			if !s.NovoLucro.Equal(d(tt.novoLucro)) {
				t.Errorf("NovoLucro = %s, want %s", s.NovoLucro, tt.novoLucro)
			}
			if !s.DeltaLucro.Equal(d(tt.deltaLucro)) {
				t.Errorf("DeltaLucro = %s, want %s", s.DeltaLucro, tt.deltaLucro)
			}
			if !s.CMVAbsoluto.Equal(d("32000")) {
				t.Errorf("CMV absoluto mudou: %s", s.CMVAbsoluto)
			}
		})
	}
}

func TestSimularPreco_ImpostosAcompanhamReceita(t *testing.T) {
	x := dreExemplo()
	s := SimularPreco(x, d("10"))
	if !s.NovosImpostos.Equal(d("8800")) {
		t.Errorf("NovosImpostos = %s, want 8800", s.NovosImpostos)
	}
	esperado := s.NovaReceita.Sub(s.NovosImpostos).Sub(x.CustosVariaveis).Sub(x.CustosFixos)
	if !s.NovoLucro.Equal(esperado) {
		t.Errorf("NovoLucro = %s, want %s", s.NovoLucro, esperado)
	}
	semImpostos := s.NovaReceita.Sub(x.CustosVariaveis).Sub(x.CustosFixos)
	if s.NovoLucro.Equal(semImpostos) {
		t.Error("NovoLucro não deveria ignorar os impostos")
	}
}

func TestSimularPreco_NovoCMVPct(t *testing.T) {
	s := SimularPreco(dreExemplo(), d("25"))
	if !s.NovoCMVPct.Valid || !s.NovoCMVPct.Decimal.Equal(d("25.6")) {
		t.Errorf("NovoCMVPct = %v, want 25.6", s.NovoCMVPct)
	}
}

func TestSimularMetaCMV(t *testing.T) {
	tests := []struct {
		name      string
		meta      string
		economia  string
		novoLucro string
	}{
		{"meta igual ao atual", "32", "0", "20000"},
		{"meta de 28%", "28", "4000", "24000"},
		{"meta acima do atual", "35", "-3000", "17000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SimularMetaCMV(dreExemplo(), d(tt.meta))
			if !s.Economia.Equal(d(tt.economia)) {
				t.Errorf("Economia = %s, want %s", s.Economia, tt.economia)
			}
			if !s.NovoLucro.Equal(d(tt.novoLucro)) {
				t.Errorf("NovoLucro = %s, want %s", s.NovoLucro, tt.novoLucro)
			}
		})
	}
}

func TestSimularVendasExtras(t *testing.T) {
	t.Run("zero unidades", func(t *testing.T) {
		s := SimularVendasExtras(dreExemplo(), decimal.Zero)
		if !s.LucroExtra.IsZero() || !s.NovoLucro.Equal(s.LucroAtual) {
			t.Errorf("simulação com zero deveria ser neutra: %+v", s)
		}
	})

	t.Run("ticket estimado por receita/30", func(t *testing.T) {
		s := SimularVendasExtras(dreExemplo(), d("1"))
		// ticket 3333,33..., receita extra 100.000, custo 32%
		if !s.TicketEstimado {
			t.Error("TicketEstimado deveria ser true")
		}
		if !s.ReceitaExtra.Equal(d("100000")) || !s.CustoExtra.Equal(d("32000")) || !s.LucroExtra.Equal(d("68000")) {
			t.Errorf("simulação = %+v", s)
		}
	})

	t.Run("ticket real com quantidade de vendas", func(t *testing.T) {
		x := dreExemplo()
		x.QuantidadeVendas = intPtr(2000)
		s := SimularVendasExtras(x, d("10"))
		// ticket 50, 10 por dia x 30 dias = 15.000 de receita extra
		if s.TicketEstimado || !s.TicketMedio.Equal(d("50")) {
			t.Errorf("ticket = %s estimado=%v", s.TicketMedio, s.TicketEstimado)
		}
		if !s.ReceitaExtra.Equal(d("15000")) || !s.NovoLucro.Equal(d("30200")) {
			t.Errorf("simulação = %+v", s)
		}
	})

	t.Run("sem receita", func(t *testing.T) {
		s := SimularVendasExtras(DRE{}, d("5"))
		if !s.ReceitaExtra.IsZero() || !s.CustoExtra.IsZero() {
			t.Errorf("simulação = %+v", s)
		}
	})
}

func TestValidarCompetencia(t *testing.T) {
	for _, c := range []string{"2026-01", "2025-12"} {
		if err := ValidarCompetencia(c); err != nil {
			t.Errorf("%s: %v", c, err)
		}
	}
	for _, c := range []string{"", "2026-13", "26-01", "2026/01", "2026-1"} {
		if err := ValidarCompetencia(c); err == nil {
			t.Errorf("%q deveria ser inválida", c)
		}
	}
}
