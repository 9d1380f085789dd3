package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// IDParam lê um parâmetro numérico da rota
func IDParam(r *http.Request, nome string) (uint, error) {
	v, err := strconv.ParseUint(mux.Vars(r)[nome], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parâmetro %q inválido", nome)
	}
	return uint(v), nil
}

// JSON escreve a resposta com o status informado
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodificarEValidar lê o corpo JSON e aplica as regras do validator.
// Em caso de falha já responde 400 e retorna false.
func DecodificarEValidar(w http.ResponseWriter, r *http.Request, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return false
	}
	if erros := Validar(dto); erros != nil {
		JSON(w, http.StatusBadRequest, erros)
		return false
	}
	return true
}
