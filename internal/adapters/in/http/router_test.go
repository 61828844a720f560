package httpin

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "narratives-solana/internal/application/usecase"
	instructiondom "narratives-solana/internal/domain/instruction"
	keypairdom "narratives-solana/internal/domain/keypair"
	"narratives-solana/internal/infra/solana"
	"narratives-solana/internal/platform/logger"
	"narratives-solana/internal/platform/metrics"
	"narratives-solana/internal/platform/ratelimiter"
)

type testServer struct {
	handler http.Handler
	metrics *metrics.Metrics
}

func newTestServer(limiter *ratelimiter.ClientLimiter) testServer {
	m := metrics.New()
	builder := solana.NewMintInstructionBuilder(
		instructiondom.MustParsePublicKey(solana.TokenProgramID),
		instructiondom.MustParsePublicKey(solana.RentSysvarID),
	)
	return testServer{
		handler: NewRouter(RouterDeps{
			KeypairUC:   usecase.NewKeypairUsecase(solana.NewKeypairGenerator()).WithMetrics(m),
			TokenUC:     usecase.NewTokenUsecase(builder).WithMetrics(m),
			Metrics:     m,
			RateLimiter: limiter,
			CORSOrigins: []string{"*"},
		}),
		metrics: m,
	}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var res response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func TestRouter_Keypair(t *testing.T) {
	s := newTestServer(nil)

	rec := s.do(http.MethodPost, "/keypair", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode(t, rec)
	require.True(t, res.Success)

	var data struct {
		Pubkey string `json:"pubkey"`
		Secret string `json:"secret"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))

	kp, err := keypairdom.FromBase58Secret(data.Secret)
	require.NoError(t, err)
	assert.Equal(t, data.Pubkey, kp.PublicKeyBase58())
}

func TestRouter_TokenCreate_FixedInputs(t *testing.T) {
	s := newTestServer(nil)
	body := `{"mintAuthority":"11111111111111111111111111111111","mint":"So11111111111111111111111111111111111111112","decimals":9}`

	rec := s.do(http.MethodPost, "/token/create", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		ProgramID string `json:"program_id"`
		Accounts  []struct {
			Pubkey     string `json:"pubkey"`
			IsSigner   bool   `json:"is_signer"`
			IsWritable bool   `json:"is_writable"`
		} `json:"accounts"`
		InstructionData string `json:"instruction_data"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))

	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", data.ProgramID)
	require.Len(t, data.Accounts, 2)
	assert.Equal(t, "So11111111111111111111111111111111111111112", data.Accounts[0].Pubkey)
	assert.True(t, data.Accounts[0].IsWritable)
	assert.False(t, data.Accounts[0].IsSigner)
	assert.Equal(t, "SysvarRent111111111111111111111111111111111", data.Accounts[1].Pubkey)
	assert.False(t, data.Accounts[1].IsWritable)
	assert.False(t, data.Accounts[1].IsSigner)

	raw, err := base64.StdEncoding.DecodeString(data.InstructionData)
	require.NoError(t, err)
	want := append([]byte{0x00, 0x09}, make([]byte, 32)...)
	want = append(want, 0x00)
	assert.Equal(t, want, raw)

	again := s.do(http.MethodPost, "/token/create", body)
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestRouter_TokenCreate_InvalidMint(t *testing.T) {
	s := newTestServer(nil)

	for _, mint := range []string{"0OIl", "1111", "So1111111111111111111111111111111111111111211"} {
		rec := s.do(http.MethodPost, "/token/create",
			`{"mintAuthority":"11111111111111111111111111111111","mint":"`+mint+`","decimals":6}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, mint)
		assert.Equal(t, "Invalid mint public key", decode(t, rec).Error, mint)
	}
}

func TestRouter_TokenCreate_InvalidAuthority(t *testing.T) {
	s := newTestServer(nil)

	rec := s.do(http.MethodPost, "/token/create",
		`{"mintAuthority":"xyz","mint":"So11111111111111111111111111111111111111112","decimals":6}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid mint authority public key", decode(t, rec).Error)
}

func TestRouter_NoKeyMaterialInTokenResponseOrLogs(t *testing.T) {
	var logs bytes.Buffer
	logger.InitWithWriter("production", true, &logs)
	t.Cleanup(func() { logger.InitWithWriter("development", false, io.Discard) })

	s := newTestServer(nil)

	kpRec := s.do(http.MethodPost, "/keypair", "")
	require.Equal(t, http.StatusOK, kpRec.Code)
	var kp struct {
		Pubkey string `json:"pubkey"`
		Secret string `json:"secret"`
	}
	require.NoError(t, json.Unmarshal(decode(t, kpRec).Data, &kp))

	rec := s.do(http.MethodPost, "/token/create",
		`{"mintAuthority":"`+kp.Pubkey+`","mint":"So11111111111111111111111111111111111111112","decimals":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), kp.Secret)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, logs.String(), kp.Secret)
	assert.Contains(t, logs.String(), "[http] request")
}

func TestRouter_MethodNotAllowedAndNotFound(t *testing.T) {
	s := newTestServer(nil)

	tests := []struct {
		method, path string
		want         int
		msg          string
	}{
		{http.MethodGet, "/keypair", http.StatusMethodNotAllowed, "Method not allowed"},
		{http.MethodPut, "/token/create", http.StatusMethodNotAllowed, "Method not allowed"},
		{http.MethodPost, "/healthz", http.StatusMethodNotAllowed, "Method not allowed"},
		{http.MethodGet, "/nope", http.StatusNotFound, "Not found"},
		{http.MethodPost, "/token", http.StatusNotFound, "Not found"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, "")
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			res := decode(t, rec)
			assert.False(t, res.Success)
			assert.Equal(t, tt.msg, res.Error)
		})
	}
}

func TestRouter_HealthzAndMetrics(t *testing.T) {
	s := newTestServer(nil)

	rec := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	s.do(http.MethodPost, "/keypair", "")

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `solana_service_http_requests_total{method="POST",route="/keypair",status="200"} 1`)
	assert.Contains(t, body, "solana_service_keypairs_generated_total 1")
}

func TestRouter_RateLimited(t *testing.T) {
	s := newTestServer(ratelimiter.New(0.001, 1, 0))

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "").Code)

	rec := s.do(http.MethodPost, "/keypair", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests", decode(t, rec).Error)
}

func TestRouter_OptionalRoutes(t *testing.T) {
	h := NewRouter(RouterDeps{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/keypair", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type panickingBuilder struct{}

func (panickingBuilder) InitializeMint(instructiondom.InitializeMintParams) (instructiondom.Instruction, error) {
	panic("builder blew up")
}

func TestRouter_PanicIsLoggedAndCounted(t *testing.T) {
	var logs bytes.Buffer
	logger.InitWithWriter("production", true, &logs)
	t.Cleanup(func() { logger.InitWithWriter("development", false, io.Discard) })

	m := metrics.New()
	h := NewRouter(RouterDeps{
		TokenUC: usecase.NewTokenUsecase(panickingBuilder{}),
		Metrics: m,
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token/create", strings.NewReader(
		`{"mintAuthority":"11111111111111111111111111111111","mint":"So11111111111111111111111111111111111111112","decimals":9}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec).Error)
	assert.NotContains(t, rec.Body.String(), "builder blew up")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/token/create", http.MethodPost, "500")))
	assert.Contains(t, logs.String(), "[recover] PANIC")
	assert.Contains(t, logs.String(), `"message":"[http] request"`)
	assert.Contains(t, logs.String(), `"status":500`)
}
