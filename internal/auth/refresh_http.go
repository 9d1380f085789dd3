package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/HubGAQ/api-gaq/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// TokenResponse é o corpo devolvido no login e no refresh
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func novoTokenResponse(access string) TokenResponse {
	return TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(AccessTTL.Seconds())}
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

func setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// emitirRefresh grava um novo refresh token da família e seta o cookie
func emitirRefresh(db *gorm.DB, w http.ResponseWriter, s Sessao, familyID string) error {
	raw, err := genRaw()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UsuarioID: s.UsuarioID,
		FamilyID:  familyID,
		Hash:      hashRaw(raw),
		Papel:     s.Papel,
		ClienteID: s.ClienteID,
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return err
	}
	setRTCookie(w, raw, rt.ExpiresAt)
	return nil
}

// IssueTokensOnLogin é chamado pelo login depois de validar usuário e senha
func IssueTokensOnLogin(db *gorm.DB, w http.ResponseWriter, s Sessao) (TokenResponse, error) {
	access, err := GenerateAccessToken(s)
	if err != nil {
		return TokenResponse{}, err
	}
	if err := emitirRefresh(db, w, s, uuid.NewString()); err != nil {
		return TokenResponse{}, err
	}
	return novoTokenResponse(access), nil
}

// POST /auth/refresh
func RefreshHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(RefreshCookie)
		if err != nil || c.Value == "" {
			http.Error(w, "no refresh", http.StatusUnauthorized)
			return
		}

		var cur RefreshToken
		if err := db.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
			clearRTCookie(w)
			http.Error(w, "invalid refresh", http.StatusUnauthorized)
			return
		}
		if !cur.Valido(time.Now()) {
			// reuso de token revogado derruba a família inteira
			if cur.RevokedAt != nil {
				now := time.Now()
				_ = db.Model(&RefreshToken{}).
					Where("family_id = ? AND revoked_at IS NULL", cur.FamilyID).
					Update("revoked_at", &now).Error
			}
			clearRTCookie(w)
			http.Error(w, "expired refresh", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		if err := db.Model(&cur).Update("revoked_at", &now).Error; err != nil {
			config.LogError(config.GetLogger(), "auth", "RefreshHTTPHandler", "revogar refresh atual", cur.ID, err)
		}

		access, err := GenerateAccessToken(cur.Sessao())
		if err != nil {
			clearRTCookie(w)
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		if err := emitirRefresh(db, w, cur.Sessao(), cur.FamilyID); err != nil {
			config.LogError(config.GetLogger(), "auth", "RefreshHTTPHandler", "emitir refresh", cur.ID, err)
			clearRTCookie(w)
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}

		utils.JSON(w, http.StatusOK, novoTokenResponse(access))
	}
}

// POST /auth/logout
func LogoutHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
			now := time.Now()
			_ = db.Model(&RefreshToken{}).Where("hash = ?", hashRaw(c.Value)).Update("revoked_at", &now).Error
		}
		clearRTCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RefreshToken{})
}
