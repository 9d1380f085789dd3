package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrSenhaVazia indica que não há senha a cifrar para o usuário.
var ErrSenhaVazia = errors.New("senha vazia")

const custoSenha = 12

// HashSenha cifra a senha de um usuário do hub (admin ou cliente) para
// gravação. Senhas temporárias passam pelo mesmo caminho.
func HashSenha(senha string) (string, error) {
	if senha == "" {
		return "", ErrSenhaVazia
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), custoSenha)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSenha confere a senha digitada no login contra o hash gravado.
// Usuário sem hash nunca autentica.
func CheckSenha(hash, senha string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
