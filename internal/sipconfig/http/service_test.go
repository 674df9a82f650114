package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/sipconfig/internal/sip"
)

type staticConfig struct{}

func (staticConfig) GetHTTPAddr() string { return "127.0.0.1:0" }

type staticEvaluator struct {
	rep   *sip.Report
	calls int
}

func (e *staticEvaluator) Evaluate(ctx context.Context) *sip.Report {
	e.calls++
	return e.rep
}

func supported() *staticEvaluator {
	live := sip.ConfigWord(0)
	nv := sip.ConfigWord(0x03)
	v := sip.OSVersion{Major: 14, Minor: 5}
	rows := []sip.Row{{ConfigFlag: sip.AggregateFlag, Enabled: sip.Int(true), EnabledNVRAM: sip.Int(true)}}
	for _, f := range sip.Flags() {
		rows = append(rows, sip.Row{ConfigFlag: f.Name, Enabled: sip.Int(true), EnabledNVRAM: sip.Int(nv.Has(f.Bit))})
	}
	return &staticEvaluator{rep: &sip.Report{
		OSVersion:   &v,
		LiveConfig:  &live,
		NVRAMStatus: sip.OutcomeSuccess,
		NVRAMConfig: &nv,
		Rows:        rows,
	}}
}

func unsupported() *staticEvaluator {
	return &staticEvaluator{rep: &sip.Report{
		NVRAMStatus: sip.OutcomeUnavailable,
		Reason:      "unsupported platform version: 10.10",
		Rows:        []sip.Row{},
	}}
}

func get(t *testing.T, s *Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.GetRouter().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSIPConfig_JSON(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/api/v1/sip_config")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, len(sip.Flags())+1)
	assert.Equal(t, "sip", rows[0]["config_flag"])
	assert.Equal(t, float64(1), rows[1]["enabled_nvram"])
	assert.Equal(t, float64(0), rows[3]["enabled_nvram"])
}

func TestSIPConfig_CSV(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/api/v1/sip_config?format=csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "config_flag,enabled,enabled_nvram\nsip,1,1\n"))
}

func TestSIPConfig_BadFormat(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/api/v1/sip_config?format=xml")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_argument")
}

func TestSIPConfig_Unsupported(t *testing.T) {
	s := NewService(staticConfig{}, unsupported())
	w := get(t, s, "/api/v1/sip_config")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSIPConfigFlag(t *testing.T) {
	s := NewService(staticConfig{}, supported())

	w := get(t, s, "/api/v1/sip_config/allow_unrestricted_fs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"config_flag":"allow_unrestricted_fs","enabled":1,"enabled_nvram":1}`, w.Body.String())

	w = get(t, s, "/api/v1/sip_config/sip")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, s, "/api/v1/sip_config/allow_everything")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestSIPConfigFlag_Unsupported(t *testing.T) {
	s := NewService(staticConfig{}, unsupported())
	w := get(t, s, "/api/v1/sip_config/sip")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReport(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/api/v1/report")
	require.Equal(t, http.StatusOK, w.Code)

	var rep map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "success", rep["nvram_status"])
	assert.Equal(t, "0x00000003", rep["nvram_config"])

	w = get(t, s, "/api/v1/report?format=yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nvram_status: success")
}

func TestFlags(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/api/v1/flags")
	require.Equal(t, http.StatusOK, w.Code)

	var flags []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flags))
	require.Len(t, flags, len(sip.Flags()))
	assert.Equal(t, "CSR_ALLOW_UNTRUSTED_KEXTS", flags[0]["constant"])
}

func TestNoRoute(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	w := get(t, s, "/api/v1/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func callTool(t *testing.T, s *Service, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = QuerySIPConfigTool.Name
	req.Params.Arguments = args
	res, err := s.handleMCPQuerySIPConfig(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestMCPQuerySIPConfig(t *testing.T) {
	s := NewService(staticConfig{}, supported())

	res := callTool(t, s, nil)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "allow_device_configuration,1,0")

	res = callTool(t, s, map[string]any{"flag": "allow_untrusted_kexts"})
	assert.False(t, res.IsError)
	assert.Equal(t, "config_flag,enabled,enabled_nvram\nallow_untrusted_kexts,1,1\n", text(t, res))

	res = callTool(t, s, map[string]any{"flag": "nope"})
	assert.True(t, res.IsError)
}

func TestMCPQuerySIPConfig_Unsupported(t *testing.T) {
	s := NewService(staticConfig{}, unsupported())
	res := callTool(t, s, nil)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "10.10")

	res = callTool(t, s, map[string]any{"flag": "allow_untrusted_kexts"})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "10.10")
}

func TestMCPListSIPFlags(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	res, err := s.handleMCPListSIPFlags(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "CSR_ALLOW_UNRESTRICTED_NVRAM")
}

func TestStartStop(t *testing.T) {
	s := NewService(staticConfig{}, supported())
	require.NoError(t, s.Start())
	addr := s.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop())
	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err)
}

type fixedAddr string

func (a fixedAddr) GetHTTPAddr() string { return string(a) }

func TestStart_AddrInUse(t *testing.T) {
	first := NewService(staticConfig{}, supported())
	require.NoError(t, first.Start())
	defer first.Stop()

	second := NewService(fixedAddr(first.Addr()), supported())
	assert.Error(t, second.Start())
	assert.NoError(t, second.Stop())
}
