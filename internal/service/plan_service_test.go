package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/planclient"
	"github.com/alexanderramin/studyplan/internal/render"
	"github.com/alexanderramin/studyplan/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	generateCalls []contract.PlanRequest
	downloadCalls []contract.ExportRequest

	generateResp *contract.PlanResponse
	generateErr  error
	downloadData []byte
	downloadErr  error
	modules      []string
}

func (f *fakeClient) Generate(_ context.Context, req contract.PlanRequest) (*contract.PlanResponse, error) {
	f.generateCalls = append(f.generateCalls, req)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generateResp, nil
}

func (f *fakeClient) Download(_ context.Context, req contract.ExportRequest) ([]byte, error) {
	f.downloadCalls = append(f.downloadCalls, req)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.downloadData, nil
}

func (f *fakeClient) Modules(context.Context) ([]string, error) {
	return f.modules, nil
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func rangeOf(t *testing.T, start, end string) domain.DateRange {
	return domain.DateRange{Start: date(t, start), End: date(t, end)}
}

func okResponse() *contract.PlanResponse {
	return &contract.PlanResponse{
		Success: true,
		Schedule: []contract.DayPlan{
			{DayNumber: 1, Topics: []contract.TopicBlock{{Course: "Python", Module: "Basics", Topics: "vars"}}},
			{DayNumber: 2, Topics: []contract.TopicBlock{{Course: "Python", Module: "Loops", Topics: "for"}}},
		},
		Metrics: contract.PlanMetrics{ScheduledDays: 2, TotalModules: 2, FinishDate: "2024-03-02", BufferDays: 18},
	}
}

type harness struct {
	client   *fakeClient
	session  *session.Session
	shown    []render.Itinerary
	observer *recordingObserver
	svc      PlanService
}

func newHarness() *harness {
	h := &harness{client: &fakeClient{}, session: session.New(), observer: &recordingObserver{}}
	surface := render.SurfaceFunc(func(it render.Itinerary) { h.shown = append(h.shown, it) })
	h.svc = NewPlanService(h.client, render.NewRenderer(h.session, surface), h.session, h.observer)
	return h
}

func TestGenerate_IncompleteRange_NoRequest(t *testing.T) {
	h := newHarness()

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: domain.DateRange{Start: date(t, "2024-03-01")},
		Pace:  domain.PaceBalanced,
	})

	require.ErrorIs(t, err, ErrIncompleteRange)
	assert.True(t, IsInputError(err))
	assert.Empty(t, h.client.generateCalls)
	assert.Empty(t, h.shown)
}

func TestGenerate_TooShort_NoRequest(t *testing.T) {
	h := newHarness()

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: rangeOf(t, "2024-03-01", "2024-03-14"), // 14 days
		Pace:  domain.PaceIntensive,
	})

	require.ErrorIs(t, err, ErrRangeTooShort)
	assert.Empty(t, h.client.generateCalls)
}

func TestGenerate_InvalidPace(t *testing.T) {
	h := newHarness()

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: rangeOf(t, "2024-03-01", "2024-03-20"),
		Pace:  domain.Pace("sprint"),
	})

	require.ErrorIs(t, err, ErrInvalidPace)
	assert.Empty(t, h.client.generateCalls)
}

func TestGenerate_Success_RendersAndStores(t *testing.T) {
	h := newHarness()
	h.client.generateResp = okResponse()

	it, err := h.svc.Generate(context.Background(), GenerateInput{
		Range:     rangeOf(t, "2024-03-01", "2024-03-20"),
		Pace:      domain.PaceBalanced,
		Completed: []string{"Python - Intro"},
	})
	require.NoError(t, err)
	require.NotNil(t, it)

	require.Len(t, h.client.generateCalls, 1)
	req := h.client.generateCalls[0]
	assert.Equal(t, "2024-03-01", req.StartDate)
	assert.Equal(t, "2024-03-20", req.EndDate)
	assert.Equal(t, domain.PaceBalanced, req.Pace)
	assert.Equal(t, []string{"Python - Intro"}, req.CompletedModules)

	assert.Len(t, it.Days, 2)
	assert.Len(t, h.shown, 1)

	cur, ok := h.session.Current()
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", cur.StartDate)
	assert.Equal(t, domain.PaceBalanced, cur.Pace)
	assert.Len(t, cur.Schedule, 2)

	require.Len(t, h.observer.events, 1)
	assert.Equal(t, "generate-plan", h.observer.events[0].Name)
	assert.True(t, h.observer.events[0].Success)
}

func TestGenerate_BackendError_VerbatimAndNotRendered(t *testing.T) {
	h := newHarness()
	h.client.generateErr = &planclient.BackendError{Op: planclient.OpGenerate, Status: 400, Message: "Minimum 15 days required"}

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: rangeOf(t, "2024-03-01", "2024-03-20"),
		Pace:  domain.PaceBalanced,
	})

	var be *planclient.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Minimum 15 days required", err.Error())
	assert.Empty(t, h.shown)
	_, ok := h.session.Current()
	assert.False(t, ok)
}

func TestGenerate_TransportFailure_KeepsPriorResult(t *testing.T) {
	h := newHarness()
	h.client.generateResp = okResponse()
	in := GenerateInput{Range: rangeOf(t, "2024-03-01", "2024-03-20"), Pace: domain.PaceBalanced}

	_, err := h.svc.Generate(context.Background(), in)
	require.NoError(t, err)

	h.client.generateErr = planclient.ErrTimeout
	in.Range = rangeOf(t, "2024-04-01", "2024-04-30")
	_, err = h.svc.Generate(context.Background(), in)

	require.ErrorIs(t, err, ErrGenerateFailed)
	assert.ErrorIs(t, err, planclient.ErrTimeout)
	assert.False(t, IsInputError(err))

	cur, ok := h.session.Current()
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", cur.StartDate, "failed call must not replace the stored result")
	assert.Len(t, h.shown, 1)
}

func TestGenerate_InvalidDayNumber_IsFailure(t *testing.T) {
	h := newHarness()
	resp := okResponse()
	resp.Schedule[0].DayNumber = 0
	h.client.generateResp = resp

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: rangeOf(t, "2024-03-01", "2024-03-20"),
		Pace:  domain.PaceBalanced,
	})

	require.ErrorIs(t, err, ErrGenerateFailed)
	assert.ErrorIs(t, err, render.ErrInvalidDayNumber)
	_, ok := h.session.Current()
	assert.False(t, ok)
}

func TestGenerate_LastSuccessWins(t *testing.T) {
	h := newHarness()
	h.client.generateResp = okResponse()
	ctx := context.Background()

	_, err := h.svc.Generate(ctx, GenerateInput{Range: rangeOf(t, "2024-03-01", "2024-03-20"), Pace: domain.PaceBalanced})
	require.NoError(t, err)
	_, err = h.svc.Generate(ctx, GenerateInput{Range: rangeOf(t, "2024-05-01", "2024-05-20"), Pace: domain.PaceIntensive})
	require.NoError(t, err)

	cur, ok := h.session.Current()
	require.True(t, ok)
	assert.Equal(t, "2024-05-01", cur.StartDate)
	assert.Equal(t, domain.PaceIntensive, cur.Pace)
}

func TestDownload_NoResult_NoRequest(t *testing.T) {
	h := newHarness()

	art, err := h.svc.Download(context.Background())

	require.NoError(t, err)
	assert.Nil(t, art)
	assert.Empty(t, h.client.downloadCalls)
	assert.Empty(t, h.observer.events)
}

func TestDownload_PostsCurrentTriple(t *testing.T) {
	h := newHarness()
	h.client.generateResp = okResponse()
	h.client.downloadData = []byte("PK\x03\x04")

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: rangeOf(t, "2024-03-01", "2024-03-20"),
		Pace:  domain.PaceRelaxed,
	})
	require.NoError(t, err)

	art, err := h.svc.Download(context.Background())
	require.NoError(t, err)
	require.NotNil(t, art)

	require.Len(t, h.client.downloadCalls, 1)
	body := h.client.downloadCalls[0]
	assert.Equal(t, "2024-03-01", body.StartDate)
	assert.Equal(t, domain.PaceRelaxed, body.Pace)
	assert.Len(t, body.Schedule, 2)

	assert.Equal(t, "study_plan_2024-03-01.xlsx", art.Filename)
	assert.Equal(t, []byte("PK\x03\x04"), art.Data)
}

func TestDownload_TransportFailure(t *testing.T) {
	h := newHarness()
	h.client.generateResp = okResponse()
	h.client.downloadErr = planclient.ErrBackendUnavailable

	_, err := h.svc.Generate(context.Background(), GenerateInput{
		Range: rangeOf(t, "2024-03-01", "2024-03-20"),
		Pace:  domain.PaceBalanced,
	})
	require.NoError(t, err)

	art, err := h.svc.Download(context.Background())
	assert.Nil(t, art)
	require.ErrorIs(t, err, ErrDownloadFailed)
	assert.True(t, errors.Is(err, planclient.ErrBackendUnavailable))
}

func TestArtifact_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	art := &Artifact{Filename: "study_plan_2024-03-01.xlsx", Data: []byte("data")}

	path, err := art.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "study_plan_2024-03-01.xlsx"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestModules(t *testing.T) {
	h := newHarness()
	h.client.modules = []string{"Python - Basics", "SQL - Joins"}

	mods, err := h.svc.Modules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Python - Basics", "SQL - Joins"}, mods)
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "generate-plan", Success: true})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "generate-plan", Err: ErrRangeTooShort})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "download-plan", Err: ErrDownloadFailed})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=plan_use_case use_case=generate-plan")
	assert.Contains(t, out, "level=WARN msg=plan_use_case use_case=generate-plan")
	assert.Contains(t, out, "level=ERROR msg=plan_use_case use_case=download-plan")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
