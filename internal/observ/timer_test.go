package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSumFoldsPhasesByName(t *testing.T) {
	a := Report{Total: 3 * time.Millisecond, Phases: []PhaseReport{
		{Name: PhaseParse, Dur: time.Millisecond, Count: 1},
		{Name: PhaseFormat, Dur: 2 * time.Millisecond, Count: 1},
	}}
	b := Report{Total: 4 * time.Millisecond, Phases: []PhaseReport{
		{Name: PhaseFormat, Dur: 4 * time.Millisecond, Count: 1},
	}}

	got := Sum(a, b)
	require.Equal(t, 7*time.Millisecond, got.Total)
	require.Equal(t, []PhaseReport{
		{Name: PhaseParse, Dur: time.Millisecond, Count: 1},
		{Name: PhaseFormat, Dur: 6 * time.Millisecond, Count: 2},
	}, got.Phases)

	var sb strings.Builder
	require.NoError(t, got.Write(&sb))
	require.Equal(t, "timings:\n"+
		"  parse           1.00 ms  x1\n"+
		"  format          6.00 ms  x2\n"+
		"  total           7.00 ms\n", sb.String())
}

func TestTimerRecordsPhases(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin(PhaseLoad))
	tm.End(tm.Begin(PhaseParse))
	tm.End(tm.Begin(PhaseParse))
	tm.End(7)

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	require.Equal(t, PhaseLoad, r.Phases[0].Name)
	require.Equal(t, 2, r.Phases[1].Count)
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin(PhaseLoad))
	require.Empty(t, tm.Report().Phases)
}
