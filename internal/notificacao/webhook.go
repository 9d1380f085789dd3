package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/HubGAQ/api-gaq/internal/config"
)

// AvaliacaoConcluida é o corpo enviado ao webhook quando uma avaliação é finalizada
type AvaliacaoConcluida struct {
	Evento         string    `json:"evento"`
	ClienteID      uint      `json:"clienteId"`
	AvaliacaoID    uint      `json:"avaliacaoId"`
	PontuacaoTotal int       `json:"pontuacaoTotal"`
	Classificacao  string    `json:"classificacao"`
	ConcluidaEm    time.Time `json:"concluidaEm"`
}

const EventoAvaliacaoConcluida = "avaliacao.concluida"

// Webhook envia notificações por HTTP. Sem URL configurada, não faz nada.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NovoWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (wh *Webhook) Enviar(ctx context.Context, payload any) error {
	if wh == nil || wh.URL == "" {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wh.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

// AvaliacaoConcluida dispara o evento. Falhas só vão para o log: a
// finalização já foi gravada e não deve ser desfeita por causa do webhook.
func (wh *Webhook) AvaliacaoConcluida(ctx context.Context, e AvaliacaoConcluida) {
	e.Evento = EventoAvaliacaoConcluida
	if err := wh.Enviar(ctx, e); err != nil {
		config.LogError(config.GetLogger(), "notificacao", "AvaliacaoConcluida", "enviar webhook", e.AvaliacaoID, err)
	}
}
