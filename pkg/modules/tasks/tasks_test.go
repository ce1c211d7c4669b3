// pkg/modules/tasks/tasks_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: execx.Fake
// PURPOSE: Test pending count rendering and recurring task scheduling

package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/polka-dots/polka/pkg/execx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Command:         "task",
	CriticalUrgency: 7,
	Bullet:          "•",
}

func TestParseExport(t *testing.T) {
	tasks := ParseExport(`[{"description":"a","urgency":2.5},{"description":"b","urgency":"high"},{"description":"c"}]`)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].Description)
	assert.Equal(t, "c", tasks[1].Description)

	assert.Nil(t, ParseExport("not json"))
}

func TestFormat(t *testing.T) {
	t.Run("empty hides", func(t *testing.T) {
		assert.Equal(t, "", Format(nil, testConfig).Text)
	})

	t.Run("todo", func(t *testing.T) {
		p := Format([]Task{{"write", 1}, {"read", 6.9}}, testConfig)
		assert.Equal(t, "2", p.Text)
		assert.Equal(t, "Active:2\n•write\n•read", p.Tooltip)
		assert.Equal(t, "todo", p.Class)
	})

	t.Run("critical at threshold", func(t *testing.T) {
		p := Format([]Task{{"pay", 7}}, testConfig)
		assert.Equal(t, "critical", p.Class)
	})
}

func TestModule_Render(t *testing.T) {
	fake := execx.NewFake().On("task status:pending export", `[{"description":"x","urgency":9}]`)
	p, ok := New(testConfig, fake).Render(context.Background())
	require.True(t, ok)
	assert.Equal(t, "1", p.Text)
	assert.Equal(t, "critical", p.Class)

	p, ok = New(testConfig, execx.NewFake()).Render(context.Background())
	require.True(t, ok)
	assert.Equal(t, "", p.Text, "unavailable tracker blanks the module")
}

func TestParseEntryDate(t *testing.T) {
	got, ok := ParseEntryDate("2026-10-01\n")
	require.True(t, ok)
	assert.Equal(t, time.October, got.Month())
	assert.Equal(t, 1, got.Day())

	got, ok = ParseEntryDate("20260215T101500Z")
	require.True(t, ok)
	assert.Equal(t, 15, got.Day())

	_, ok = ParseEntryDate("")
	assert.False(t, ok)
}

const (
	countCard   = "task description.is:pay credit card status:pending count"
	lastCard    = "task description.is:pay credit card status:pending,completed limit:1 rc.report.minimal.columns:entry rc.report.minimal.labels: minimal"
	addCard     = "task add pay credit card due:3d"
	countValent = "task description.is:Valentines Day status:pending count"
	addValent   = "task add Valentines Day due:14d"
)

func scheduleConfig() Config {
	cfg := testConfig
	cfg.Recurring = []IntervalTask{{Description: "pay credit card", Every: 7, DueDays: 3}}
	cfg.Dated = []DatedTask{{Description: "Valentines Day", Dates: []string{"02-01"}, DueDays: 14}}
	return cfg
}

func fixedDay(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 9, 30, 0, 0, time.Local) }
}

func TestScheduler_IntervalDue(t *testing.T) {
	fake := execx.NewFake().
		On(lastCard, "2026-09-26").
		On(countCard, "0").
		On(addCard, "Created task 12.")

	added, err := NewScheduler(scheduleConfig(), fake).WithClock(fixedDay(2026, 10, 3)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pay credit card"}, added)
	assert.True(t, fake.Called(addCard))
}

func TestScheduler_IntervalNotYetDue(t *testing.T) {
	fake := execx.NewFake().
		On(lastCard, "2026-09-30").
		On(countCard, "0")

	added, err := NewScheduler(scheduleConfig(), fake).WithClock(fixedDay(2026, 10, 3)).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestScheduler_SkipsPendingDuplicate(t *testing.T) {
	fake := execx.NewFake().
		On(lastCard, "").
		On(countCard, "1")

	added, err := NewScheduler(scheduleConfig(), fake).WithClock(fixedDay(2026, 10, 3)).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.False(t, fake.Called(addCard))
}

func TestScheduler_DatedTask(t *testing.T) {
	fake := execx.NewFake().
		On(lastCard, "2026-01-30").
		On(countValent, "0").
		On(addValent, "Created task 3.")

	added, err := NewScheduler(scheduleConfig(), fake).WithClock(fixedDay(2026, 2, 1)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Valentines Day"}, added)
}

func TestScheduler_AddFailure(t *testing.T) {
	fake := execx.NewFake().
		On(countCard, "0").
		OnFail(addCard, 2)

	_, err := NewScheduler(scheduleConfig(), fake).WithClock(fixedDay(2026, 10, 3)).Run(context.Background())
	require.Error(t, err)
}
