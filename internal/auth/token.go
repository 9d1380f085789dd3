package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims do access token: identidade, papel e cliente vinculado
type Claims struct {
	UsuarioID uint   `json:"usuarioId"`
	Papel     string `json:"papel"`
	ClienteID *uint  `json:"clienteId,omitempty"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token
const AccessTTL = 15 * time.Minute

// GenerateAccessToken gera um JWT RS256 com kid, iss, aud, iat, nbf e jti
func GenerateAccessToken(s Sessao) (string, error) {
	priv := getPriv()
	if priv == nil {
		return "", ErrChavesNaoConfiguradas
	}

	now := time.Now()
	claims := &Claims{
		UsuarioID: s.UsuarioID,
		Papel:     s.Papel,
		ClienteID: s.ClienteID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    getIssuer(),
			Audience:  []string{getAudience()},
			Subject:   fmt.Sprint(s.UsuarioID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        uuid.NewString(),
		},
	}

	tok := jwt.NewWithClaims(signMethod(), claims)
	tok.Header["kid"] = getKID()
	return tok.SignedString(priv)
}

// ParseAndValidate valida assinatura, iss, aud e exp
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(getIssuer()),
		jwt.WithAudience(getAudience()),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		k, _ := t.Header["kid"].(string)
		if k == "" {
			return nil, errors.New("kid ausente")
		}
		pub, ok := getPub(k)
		if !ok {
			return nil, errors.New("kid desconhecido")
		}
		return pub, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	if c.Papel != PapelAdmin && c.Papel != PapelCliente {
		return nil, errors.New("papel inválido")
	}
	return c, nil
}

// Sessao converte as claims na sessão usada pelos handlers
func (c *Claims) Sessao() Sessao {
	return Sessao{UsuarioID: c.UsuarioID, Papel: c.Papel, ClienteID: c.ClienteID}
}
