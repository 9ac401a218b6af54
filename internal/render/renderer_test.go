package render

import (
	"testing"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ShowsAndStoresResult(t *testing.T) {
	sess := session.New()
	var shown []Itinerary
	r := NewRenderer(sess, SurfaceFunc(func(it Itinerary) { shown = append(shown, it) }))

	it, err := r.Render(sampleResponse(), "2024-03-01", domain.PaceIntensive)
	require.NoError(t, err)

	require.Len(t, shown, 1)
	assert.Equal(t, it, shown[0])

	cur, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", cur.StartDate)
	assert.Equal(t, domain.PaceIntensive, cur.Pace)
	assert.Len(t, cur.Schedule, 3)
}

func TestRenderer_RenderTwiceReplaces(t *testing.T) {
	sess := session.New()
	var shown []Itinerary
	r := NewRenderer(sess, SurfaceFunc(func(it Itinerary) { shown = append(shown, it) }))

	_, err := r.Render(sampleResponse(), "2024-03-01", domain.PaceBalanced)
	require.NoError(t, err)
	_, err = r.Render(sampleResponse(), "2024-03-01", domain.PaceBalanced)
	require.NoError(t, err)

	require.Len(t, shown, 2)
	assert.Equal(t, shown[0], shown[1])
}

func TestRenderer_InvalidResponseKeepsPreviousResult(t *testing.T) {
	sess := session.New()
	r := NewRenderer(sess, nil)
	_, err := r.Render(sampleResponse(), "2024-03-01", domain.PaceBalanced)
	require.NoError(t, err)

	bad := sampleResponse()
	bad.Schedule[0].DayNumber = -1
	_, err = r.Render(bad, "2024-04-01", domain.PaceRelaxed)
	require.Error(t, err)

	cur, _ := sess.Current()
	assert.Equal(t, "2024-03-01", cur.StartDate)
}

func TestRenderer_BadStartDate(t *testing.T) {
	r := NewRenderer(session.New(), nil)
	_, err := r.Render(sampleResponse(), "03/01/2024", domain.PaceBalanced)
	assert.Error(t, err)
}
