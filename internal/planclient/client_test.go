package planclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func samplePlanRequest() contract.PlanRequest {
	return contract.PlanRequest{
		StartDate:        "2024-03-01",
		EndDate:          "2024-03-20",
		Pace:             domain.PaceBalanced,
		CompletedModules: []string{"Python - Basics"},
	}
}

func TestClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		var req contract.PlanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, samplePlanRequest(), req)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(contract.PlanResponse{
			Success: true,
			Schedule: []contract.DayPlan{
				{DayNumber: 1, Topics: []contract.TopicBlock{{Course: "SQL", Module: "Joins"}}},
			},
			Metrics: contract.PlanMetrics{ScheduledDays: 1, TotalModules: 1, FinishDate: "2024-03-01", BufferDays: 19},
		})
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), samplePlanRequest())

	require.NoError(t, err)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, "Joins", resp.Schedule[0].Topics[0].Module)
	assert.Equal(t, 19, resp.Metrics.BufferDays)
}

func TestClient_Generate_ErrorFieldIsBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Minimum 15 days required"}`))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Minimum 15 days required", be.Message)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.False(t, IsTransport(err))
}

func TestClient_Generate_ErrorFieldWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"No schedule generated"}`))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "No schedule generated", be.Error())
}

func TestClient_Generate_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.True(t, IsTransport(err))
}

func TestClient_Generate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"schedule": [`))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	client := New(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.TimeoutMs = 1000

	client := New(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestClient_Generate_NoRetryOnFailure(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), samplePlanRequest())

	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_Download_ReturnsBytes(t *testing.T) {
	payload := []byte("PK\x03\x04fake-xlsx")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download", r.URL.Path)
		var req contract.ExportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2024-03-01", req.StartDate)
		assert.Equal(t, domain.PaceRelaxed, req.Pace)

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(payload)
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	data, err := client.Download(context.Background(), contract.ExportRequest{
		StartDate: "2024-03-01",
		Pace:      domain.PaceRelaxed,
	})

	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, data))
}

func TestClient_Download_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"bad schedule"}`))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	_, err := client.Download(context.Background(), contract.ExportRequest{StartDate: "2024-03-01"})

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "bad schedule", be.Message)
}

func TestClient_Modules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/modules", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"modules":["Python - Basics","SQL - Joins"]}`))
	}))
	defer srv.Close()

	client := New(testConfig(srv.URL), NoopObserver{})
	mods, err := client.Modules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Python - Basics", "SQL - Joins"}, mods)
}

func TestClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modules":[]}`))
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	client := New(testConfig(srv.URL), obs)
	_, err := client.Modules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OpModules, captured.Op)
	assert.True(t, captured.Success)
	assert.Equal(t, http.StatusOK, captured.Status)
	assert.NotEmpty(t, captured.RequestID)
}

func TestClient_ObserverErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"nope"}`))
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	client := New(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), samplePlanRequest())

	require.Error(t, err)
	assert.False(t, captured.Success)
	assert.Equal(t, "BACKEND_ERROR", captured.ErrorCode)
}

func TestLogObserver_WritesStructuredLine(t *testing.T) {
	var buf strings.Builder
	obs := NewLogObserver(&buf)

	obs.OnCallComplete(CallEvent{Op: OpGenerate, RequestID: "abc", Status: 200, Success: true})
	obs.OnCallComplete(CallEvent{Op: OpDownload, RequestID: "def", Status: 500, ErrorCode: "BAD_STATUS"})

	out := buf.String()
	assert.Contains(t, out, "msg=backend_call")
	assert.Contains(t, out, "op=generate")
	assert.Contains(t, out, "request_id=abc")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error_code=BAD_STATUS")
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.fn(e) }
