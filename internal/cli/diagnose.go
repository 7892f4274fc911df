package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"

	"github.com/farolia/farol/internal/config"
)

const (
	defaultAPIBase    = "https://api.openai.com/v1"
	defaultRealtimeWS = "wss://api.openai.com/v1/realtime"
	diagnoseTimeout   = 20 * time.Second
)

var errDiagnoseFailed = errors.New("diagnóstico encontrou falhas")

// Diagnoser walks through the checks that tell whether an account can open
// a direct realtime connection.
type Diagnoser struct {
	APIKey     string
	Model      string
	Voice      string
	APIBase    string
	RealtimeWS string
	HTTPClient *http.Client
	Out        io.Writer
}

// DiagnoseReport records which checks passed.
type DiagnoseReport struct {
	KeyPresent bool
	AuthOK     bool
	SessionOK  bool
	DirectOK   bool
}

func (r DiagnoseReport) OK() bool {
	return r.KeyPresent && r.AuthOK && r.SessionOK && r.DirectOK
}

func newDiagnoseCmd() *cobra.Command {
	var apiBase, realtimeWS string

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Check OpenAI key and realtime access",
		Long:  "Validate the API key against the models endpoint, try to create a realtime session and dial the realtime websocket directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			d := &Diagnoser{
				APIKey:     cfg.APIKey,
				Model:      cfg.Model,
				Voice:      cfg.Voice,
				APIBase:    apiBase,
				RealtimeWS: realtimeWS,
				Out:        cmd.OutOrStdout(),
			}
			if !d.Run(cmd.Context()).OK() {
				return errDiagnoseFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiBase, "api-base", defaultAPIBase, "OpenAI REST base URL")
	cmd.Flags().StringVar(&realtimeWS, "realtime-url", defaultRealtimeWS, "Realtime websocket URL")

	return cmd
}

// Run executes the checks in order, stopping after a failed authentication.
func (d *Diagnoser) Run(ctx context.Context) DiagnoseReport {
	if ctx == nil {
		ctx = context.Background()
	}
	if d.HTTPClient == nil {
		d.HTTPClient = &http.Client{Timeout: diagnoseTimeout}
	}
	if d.APIBase == "" {
		d.APIBase = defaultAPIBase
	}
	if d.RealtimeWS == "" {
		d.RealtimeWS = defaultRealtimeWS
	}
	d.APIBase = strings.TrimRight(d.APIBase, "/")

	var report DiagnoseReport

	d.printf("--- 1. Variáveis de ambiente ---\n")
	if d.APIKey != "" {
		report.KeyPresent = true
		d.printf("OK   OPENAI_API_KEY encontrada: %s\n", MaskKey(d.APIKey))
	} else {
		d.printf("FALHA OPENAI_API_KEY não encontrada. Verifique o arquivo .env.\n")
	}
	d.printf("     modelo: %s\n     voz: %s\n\n", d.Model, d.Voice)

	if !report.KeyPresent {
		d.printf("Autenticação ignorada (chave não encontrada).\n")
		return report
	}

	client := d.client()
	report.AuthOK = d.checkModels(ctx, &client)
	if !report.AuthOK {
		return report
	}
	report.SessionOK = d.checkRealtimeSession(ctx, &client)
	report.DirectOK = d.checkDirectConnection(ctx)

	d.printf("\nDiagnóstico concluído.\n")
	return report
}

func (d *Diagnoser) client() openai.Client {
	return openai.NewClient(
		option.WithAPIKey(d.APIKey),
		option.WithBaseURL(d.APIBase+"/"),
		option.WithHTTPClient(d.HTTPClient),
		option.WithMaxRetries(0),
	)
}

func (d *Diagnoser) checkModels(ctx context.Context, client *openai.Client) bool {
	d.printf("--- 2. Validando a chave em %s/models ---\n", d.APIBase)

	_, err := client.Models.List(ctx)
	var apiErr *openai.Error
	switch {
	case err == nil:
		d.printf("     status: %d\n", http.StatusOK)
		d.printf("OK   chave válida.\n")
		return true
	case errors.As(err, &apiErr):
		d.printf("     status: %d\n", apiErr.StatusCode)
		if apiErr.StatusCode == http.StatusUnauthorized {
			d.printf("FALHA chave inválida ou revogada.\n")
		} else {
			d.printf("FALHA resposta inesperada: %s\n", errorMessage(apiErr, 200))
		}
	default:
		d.printf("FALHA não foi possível contactar a API: %v\n", err)
	}
	return false
}

type realtimeSessionResponse struct {
	Websocket *struct {
		URL string `json:"url"`
	} `json:"websocket"`
	ClientSecret *struct {
		Value string `json:"value"`
	} `json:"client_secret"`
}

func (d *Diagnoser) checkRealtimeSession(ctx context.Context, client *openai.Client) bool {
	d.printf("\n--- 3. Criando sessão realtime (método seguro) ---\n")

	payload, err := json.Marshal(map[string]string{
		"model":              d.Model,
		"voice":              d.Voice,
		"input_audio_format": "pcm16",
	})
	if err != nil {
		d.printf("FALHA %v\n", err)
		return false
	}

	var resp *http.Response
	err = client.Post(ctx, "realtime/sessions", json.RawMessage(payload), &resp,
		option.WithHeader("OpenAI-Beta", "realtime=v1"))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			d.printf("     status: %d\n", apiErr.StatusCode)
			d.printf("FALHA erro ao criar a sessão: %s\n", errorMessage(apiErr, 300))
		} else {
			d.printf("FALHA não foi possível contactar a API: %v\n", err)
		}
		return false
	}
	defer resp.Body.Close()

	d.printf("     status: %d\n", resp.StatusCode)
	var session realtimeSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		d.printf("FALHA resposta ilegível: %v\n", err)
		return false
	}
	if (session.Websocket != nil && session.Websocket.URL != "") ||
		(session.ClientSecret != nil && session.ClientSecret.Value != "") {
		d.printf("OK   o método seguro funciona com esta conta.\n")
		return true
	}
	d.printf("FALHA a conta não tem permissão para sessões seguras.\n")
	return false
}

func (d *Diagnoser) checkDirectConnection(ctx context.Context) bool {
	d.printf("\n--- 4. Ligação direta via WebSocket ---\n")

	target := d.RealtimeWS + "?model=" + url.QueryEscape(d.Model)
	dialer := websocket.Dialer{
		HandshakeTimeout: diagnoseTimeout,
		Subprotocols:     []string{"realtime", "openai-insecure-api-key." + d.APIKey},
	}

	conn, resp, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			d.printf("FALHA o servidor recusou a ligação (status %d).\n", resp.StatusCode)
		} else {
			d.printf("FALHA erro inesperado na ligação direta: %v\n", err)
		}
		return false
	}
	defer conn.Close()

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))

	d.printf("OK   a conta tem acesso à API de voz por ligação direta.\n")
	return true
}

func (d *Diagnoser) printf(format string, args ...any) {
	if d.Out != nil {
		fmt.Fprintf(d.Out, format, args...)
	}
}

// MaskKey keeps the first seven and last four characters of a key.
func MaskKey(key string) string {
	if len(key) <= 11 {
		return strings.Repeat("*", len(key))
	}
	return key[:7] + "..." + key[len(key)-4:]
}

// errorMessage returns the vendor message, or the start of the raw body when
// the SDK could not parse one.
func errorMessage(apiErr *openai.Error, n int64) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Response == nil || apiErr.Response.Body == nil {
		return http.StatusText(apiErr.StatusCode)
	}
	b, _ := io.ReadAll(io.LimitReader(apiErr.Response.Body, n))
	return strings.TrimSpace(string(b))
}
