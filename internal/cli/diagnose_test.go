package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpenAI struct {
	modelsStatus  int
	sessionStatus int
	sessionBody   string
	acceptWS      bool

	sessionCalls atomic.Int32
	protocols    chan []string
}

func newFakeOpenAI(t *testing.T, f *fakeOpenAI) (apiBase, wsURL string) {
	t.Helper()
	f.protocols = make(chan []string, 1)
	upgrader := websocket.Upgrader{Subprotocols: []string{"realtime"}}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test-1234567890" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.modelsStatus)
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	})
	mux.HandleFunc("/v1/realtime/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("OpenAI-Beta") != "realtime=v1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.sessionCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.sessionStatus)
		_, _ = w.Write([]byte(f.sessionBody))
	})
	mux.HandleFunc("/v1/realtime", func(w http.ResponseWriter, r *http.Request) {
		f.protocols <- websocket.Subprotocols(r)
		if !f.acceptWS {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_, _, _ = conn.ReadMessage()
		conn.Close()
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL + "/v1", "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/realtime"
}

func TestDiagnoseAllChecksPass(t *testing.T) {
	fake := &fakeOpenAI{
		modelsStatus:  http.StatusOK,
		sessionStatus: http.StatusOK,
		sessionBody:   `{"client_secret":{"value":"ek_123"}}`,
		acceptWS:      true,
	}
	apiBase, wsURL := newFakeOpenAI(t, fake)

	var out bytes.Buffer
	d := &Diagnoser{
		APIKey:     "sk-test-1234567890",
		Model:      "gpt-4o",
		Voice:      "marin",
		APIBase:    apiBase,
		RealtimeWS: wsURL,
		Out:        &out,
	}
	report := d.Run(context.Background())

	assert.True(t, report.OK(), out.String())
	assert.Equal(t, []string{"realtime", "openai-insecure-api-key.sk-test-1234567890"}, <-fake.protocols)
	assert.Contains(t, out.String(), "sk-test...7890")
	assert.NotContains(t, out.String(), "sk-test-1234567890")
}

func TestDiagnoseStopsAfterFailedAuth(t *testing.T) {
	fake := &fakeOpenAI{modelsStatus: http.StatusOK}
	apiBase, wsURL := newFakeOpenAI(t, fake)

	var out bytes.Buffer
	d := &Diagnoser{APIKey: "sk-wrong-000000000", Model: "gpt-4o", APIBase: apiBase, RealtimeWS: wsURL, Out: &out}
	report := d.Run(context.Background())

	assert.True(t, report.KeyPresent)
	assert.False(t, report.AuthOK)
	assert.False(t, report.SessionOK)
	assert.Contains(t, out.String(), "inválida")
	assert.Empty(t, fake.protocols)
}

func TestDiagnoseReportsRejectedConnections(t *testing.T) {
	fake := &fakeOpenAI{
		modelsStatus:  http.StatusOK,
		sessionStatus: http.StatusForbidden,
		sessionBody:   `{"error":{"message":"no access"}}`,
	}
	apiBase, wsURL := newFakeOpenAI(t, fake)

	var out bytes.Buffer
	d := &Diagnoser{APIKey: "sk-test-1234567890", Model: "gpt-4o", APIBase: apiBase, RealtimeWS: wsURL, Out: &out}
	report := d.Run(context.Background())

	assert.True(t, report.AuthOK)
	assert.False(t, report.SessionOK)
	assert.False(t, report.DirectOK)
	assert.Contains(t, out.String(), "no access")
	assert.Contains(t, out.String(), "status 403")
	assert.Equal(t, int32(1), fake.sessionCalls.Load())
}

func TestDiagnoseDoesNotRetryFailedSession(t *testing.T) {
	fake := &fakeOpenAI{
		modelsStatus:  http.StatusOK,
		sessionStatus: http.StatusInternalServerError,
		sessionBody:   `{"error":{"message":"upstream down"}}`,
		acceptWS:      true,
	}
	apiBase, wsURL := newFakeOpenAI(t, fake)

	var out bytes.Buffer
	d := &Diagnoser{APIKey: "sk-test-1234567890", Model: "gpt-4o", APIBase: apiBase, RealtimeWS: wsURL, Out: &out}
	report := d.Run(context.Background())

	assert.False(t, report.SessionOK)
	assert.True(t, report.DirectOK)
	assert.Equal(t, int32(1), fake.sessionCalls.Load())
	assert.Contains(t, out.String(), "status: 500")
	assert.Contains(t, out.String(), "upstream down")
}

func TestDiagnoseWithoutKey(t *testing.T) {
	var out bytes.Buffer
	report := (&Diagnoser{Out: &out}).Run(context.Background())

	assert.False(t, report.KeyPresent)
	assert.Contains(t, out.String(), "OPENAI_API_KEY não encontrada")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "sk-proj...wxyz", MaskKey("sk-proj-abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "*****", MaskKey("short"))
}

func TestRootCmdListsCommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, name := range []string{"diagnose", "speak", "screenshot"} {
		assert.Contains(t, buf.String(), name)
	}
}

func TestScreenshotCmdFlags(t *testing.T) {
	cmd := newScreenshotCmd()

	flag := cmd.Flags().Lookup("describe")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
	assert.Error(t, cmd.Args(cmd, nil))
}
