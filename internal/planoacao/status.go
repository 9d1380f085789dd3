package planoacao

import (
	"errors"
	"fmt"
)

var ErrTransicaoInvalida = errors.New("transição de status inválida")

var statusValidos = map[string]bool{
	StatusPendente:    true,
	StatusEmAndamento: true,
	StatusConcluida:   true,
	StatusCancelada:   true,
}

func StatusValido(s string) bool { return statusValidos[s] }

// ValidarTransicao recusa qualquer saída de um plano concluído. Repetir o
// status atual é aceito.
func ValidarTransicao(de, para string) error {
	if !StatusValido(para) {
		return fmt.Errorf("status %q desconhecido", para)
	}
	if de == para {
		return nil
	}
	if de == StatusConcluida {
		return fmt.Errorf("%w: plano concluído não pode voltar para %q", ErrTransicaoInvalida, para)
	}
	return nil
}
