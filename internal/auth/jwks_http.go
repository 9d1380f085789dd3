package auth

import (
	"encoding/base64"
	"math/big"
	"net/http"

	"github.com/HubGAQ/api-gaq/internal/utils"
)

type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// GET /.well-known/jwks.json
func JWKSHandler(w http.ResponseWriter, r *http.Request) {
	kid := getKID()
	pub, ok := getPub(kid)
	if !ok || pub == nil {
		http.Error(w, "jwks unavailable", http.StatusInternalServerError)
		return
	}

	resp := struct {
		Keys []jwk `json:"keys"`
	}{
		Keys: []jwk{{
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			Kid: kid,
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	utils.JSON(w, http.StatusOK, resp)
}
