package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TrueUnknownOhms = 5.08
	cfg.ResistivityPerCM = 0.02
	cfg.InitialKnownOhms = 5.0
	cfg.RevealMinReadings = 2
	return cfg
}

// balance parks the jockey exactly on the theoretical null so that the
// recording gate opens.
func balance(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.SetJockeyPosition(s.Circuit().BalancePosition()))
	require.True(t, s.Balanced())
}

func TestSession_RecordRequiresBalance(t *testing.T) {
	s := New(testConfig())
	require.NoError(t, s.SetJockeyPosition(10.0))
	require.False(t, s.Balanced())

	_, err := s.RecordBalance()
	assert.ErrorIs(t, err, core.ErrNotBalanced)
	assert.Empty(t, s.Readings(s.Mode()))
}

func TestSession_PairLifecycle(t *testing.T) {
	s := New(testConfig())

	// Normal configuration: X=5.08 left, R=5 right balances at 48 cm.
	balance(t, s)
	r1, err := s.RecordBalance()
	require.NoError(t, err)
	assert.InDelta(t, 48.0, *r1.NormalLengthCM, 1e-9)
	assert.False(t, r1.Complete())

	// Same configuration again is rejected, log unchanged.
	_, err = s.RecordBalance()
	assert.ErrorIs(t, err, core.ErrSlotAlreadyFilled)
	require.Len(t, s.Readings(s.Mode()), 1)

	// Swap, rebalance at 52 cm, complete the pair.
	s.ToggleSwap()
	balance(t, s)
	r2, err := s.RecordBalance()
	require.NoError(t, err)
	require.True(t, r2.Complete())
	assert.Equal(t, r1.ID, r2.ID)
	assert.InDelta(t, 52.0, *r2.SwappedLengthCM, 1e-9)

	// Third recording at the same R is rejected.
	_, err = s.RecordBalance()
	assert.ErrorIs(t, err, core.ErrPairComplete)

	// The completed pair recovers X exactly.
	res := s.Result(s.Mode())
	require.True(t, res.Determined)
	assert.InDelta(t, 5.08, res.Value, 1e-9)
}

func TestSession_ResistivityModePair(t *testing.T) {
	cfg := testConfig()
	cfg.ResistivityPerCM = 0.025
	s := New(cfg)
	require.NoError(t, s.SetMode(core.ModeFindResistivity))
	require.NoError(t, s.SetKnownResistance(0.5))

	// Reference strip in the right gap: null at 50 - 0.5/0.05 = 40 cm.
	balance(t, s)
	_, err := s.RecordBalance()
	require.NoError(t, err)

	s.ToggleSwap()
	balance(t, s)
	_, err = s.RecordBalance()
	require.NoError(t, err)

	res := s.Result(core.ModeFindResistivity)
	require.True(t, res.Determined)
	assert.InDelta(t, 0.025, res.Value, 1e-9)
}

func TestSession_ModeLogsAreIndependent(t *testing.T) {
	s := New(testConfig())
	balance(t, s)
	_, err := s.RecordBalance()
	require.NoError(t, err)

	require.NoError(t, s.SetMode(core.ModeFindResistivity))
	assert.Empty(t, s.Readings(core.ModeFindResistivity))

	// Switching back does not discard the first mode's log.
	require.NoError(t, s.SetMode(core.ModeFindUnknownResistance))
	assert.Len(t, s.Readings(core.ModeFindUnknownResistance), 1)
}

func TestSession_DeleteReading(t *testing.T) {
	s := New(testConfig())
	balance(t, s)
	r, err := s.RecordBalance()
	require.NoError(t, err)

	require.NoError(t, s.DeleteReading(r.ID))
	assert.Empty(t, s.Readings(s.Mode()))

	err = s.DeleteReading(r.ID)
	assert.True(t, core.IsNotFoundError(err))
}

func TestSession_RevealGating(t *testing.T) {
	s := New(testConfig()) // RevealMinReadings = 2

	err := s.Reveal()
	assert.ErrorIs(t, err, core.ErrRevealLocked)

	recordPair := func(r float64) {
		require.NoError(t, s.SetKnownResistance(r))
		s.SetSwapped(false)
		balance(t, s)
		_, err := s.RecordBalance()
		require.NoError(t, err)
		s.SetSwapped(true)
		balance(t, s)
		_, err = s.RecordBalance()
		require.NoError(t, err)
	}

	recordPair(5.0)
	assert.ErrorIs(t, s.Reveal(), core.ErrRevealLocked)

	recordPair(4.0)
	require.NoError(t, s.Reveal())
	assert.True(t, s.Revealed(s.Mode()))

	res := s.Result(s.Mode())
	require.True(t, res.Determined)
	require.NotNil(t, res.DeviationPct)
	assert.InDelta(t, 0.0, *res.DeviationPct, 1e-6)
}

func TestSession_ResetClearsLogsAndReveal(t *testing.T) {
	s := New(testConfig())
	balance(t, s)
	_, err := s.RecordBalance()
	require.NoError(t, err)

	s.Reset()
	assert.Empty(t, s.Readings(core.ModeFindUnknownResistance))
	assert.False(t, s.Revealed(core.ModeFindUnknownResistance))
	// Ground truths survive a reset.
	assert.Equal(t, 5.08, s.TrueValue(core.ModeFindUnknownResistance))
}

func TestSession_BoundsChecks(t *testing.T) {
	s := New(testConfig())
	assert.ErrorIs(t, s.SetKnownResistance(0.0), core.ErrResistanceOutOfRange)
	assert.ErrorIs(t, s.SetKnownResistance(100.0), core.ErrResistanceOutOfRange)
	assert.ErrorIs(t, s.SetJockeyPosition(-1.0), core.ErrJockeyOutOfRange)
	assert.ErrorIs(t, s.SetJockeyPosition(100.5), core.ErrJockeyOutOfRange)
	assert.Error(t, s.SetMode("find_inductance"))
}

func TestRandomize_KeepsTruthsPositiveAndJittered(t *testing.T) {
	base := DefaultConfig()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		cfg := Randomize(base, rng)
		assert.Greater(t, cfg.TrueUnknownOhms, 0.0)
		assert.Greater(t, cfg.ResistivityPerCM, 0.0)
		assert.InDelta(t, base.TrueUnknownOhms, cfg.TrueUnknownOhms, base.TrueUnknownOhms*0.2+1e-9)
		assert.InDelta(t, base.ResistivityPerCM, cfg.ResistivityPerCM, base.ResistivityPerCM*0.1+1e-9)
	}
}
