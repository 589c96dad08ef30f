package service

import (
	"testing"
	"time"

	"device_inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 31, 10, 0, 0, 0, time.UTC)

func TestNewSnapshot_Defaults(t *testing.T) {
	s := newSnapshot("s1", models.ChartSelector{Type: models.ChartError, Label: "PC-01"}, testNow)

	assert.Equal(t, DialogIdle, s.Dialog)
	assert.Empty(t, s.Records)
	assert.Empty(t, s.Filtered)
	assert.Equal(t, time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC), s.Range.Start)
	assert.Equal(t, testNow, s.Range.End)
}

func TestApplyFetch_DiscardsStaleGeneration(t *testing.T) {
	s := newSnapshot("s1", models.ChartSelector{Type: models.ChartDeviceByRoom, Label: "P1"}, testNow)
	s = BeginFetch(s)
	first := s.Pending
	s = BeginFetch(s)
	second := s.Pending

	s, ok := ApplyFetch(s, second, sampleRecords())
	require.True(t, ok)
	require.Len(t, s.Records, 3)

	after, ok := ApplyFetch(s, first, []models.Record{{ID: "old"}})
	assert.False(t, ok)
	assert.Equal(t, s, after)
	assert.Equal(t, second, after.Generation)
}

func TestApplyFetch_ReappliesQuery(t *testing.T) {
	s := newSnapshot("s1", models.ChartSelector{Type: models.ChartDeviceByRoom, Label: "P1"}, testNow)
	s = ApplySearch(s, "printer")
	s = BeginFetch(s)

	s, ok := ApplyFetch(s, s.Pending, sampleRecords())
	require.True(t, ok)
	require.Len(t, s.Filtered, 1)
	assert.Equal(t, "d2", s.Filtered[0].ID)
	assert.Equal(t, "printer", s.Query)
}

func TestApplySearch_DoesNotMutatePrevious(t *testing.T) {
	s := newSnapshot("s1", models.ChartSelector{Type: models.ChartDeviceByRoom, Label: "P1"}, testNow)
	s = BeginFetch(s)
	s, _ = ApplyFetch(s, s.Pending, sampleRecords())

	narrowed := ApplySearch(s, "monitor")
	assert.Len(t, s.Filtered, 3)
	assert.Len(t, narrowed.Filtered, 1)

	cleared := ApplySearch(narrowed, "")
	assert.Equal(t, s.Records, cleared.Filtered)
}

func TestApplyRangeChoice(t *testing.T) {
	s := newSnapshot("s1", models.ChartSelector{Type: models.ChartError, Label: "PC"}, testNow)

	next, err := ApplyRangeChoice(s, models.WindowLastWeek, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -7), next.Range.Start)

	_, err = ApplyRangeChoice(s, "last_year", testNow)
	assert.Error(t, err)
}

func TestSnapshotView_RendersDisplayTuples(t *testing.T) {
	s := newSnapshot("s1", models.ChartSelector{Type: models.ChartUserByRoom, Label: "R1"}, testNow)
	s = BeginFetch(s)
	s, _ = ApplyFetch(s, s.Pending, []models.Record{
		{ID: "u1", Fields: map[string]any{"fullname": "Nguyen Van A", "email": "a@x.vn"}},
		{ID: "u2", Fields: map[string]any{"email": "b@x.vn"}},
	})

	v := s.View()
	assert.Equal(t, "Danh sách người dùng của R1", v.Title)
	assert.Equal(t, 2, v.Total)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "Nguyen Van A", v.Items[0].Display.Title)
	assert.Equal(t, "Không có tên", v.Items[1].Display.Title)
	assert.Equal(t, "user", v.Items[1].Display.Icon)
}
