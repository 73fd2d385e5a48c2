package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/db"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/events"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/metrics"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/repositories"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/services"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/storage"
)

const tenant = "club-a"

var defaultConfig = models.ProgressionConfig{
	BracketSize:          4,
	SinglePouleThreshold: 5,
}

type testEnv struct {
	db       *sql.DB
	svc      services.ProgressionService
	hook     *events.Mock
	uploader *storage.Mock
	metrics  *metrics.Mock
}

// setupTestDB creates a migrated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := db.Connect(db.DialectSQLite, ":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	_, err = db.Migrate(context.Background(), sqlDB, db.DialectSQLite, nil)
	require.NoError(t, err)
	return sqlDB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB := setupTestDB(t)
	env := &testEnv{
		db:       sqlDB,
		hook:     events.NewMock(),
		uploader: storage.NewMock(),
		metrics:  metrics.NewMock(),
	}
	env.svc = services.NewProgressionService(services.ProgressionServiceDeps{
		DB:           sqlDB,
		Tournaments:  repositories.NewTournamentRepository(sqlDB),
		PouleResults: repositories.NewPouleResultRepository(sqlDB),
		Matches:      repositories.NewMatchRepository(sqlDB),
		Runs:         repositories.NewProgressionRunRepository(sqlDB),
		Positions:    repositories.NewFinalPositionRepository(sqlDB),
		Locker:       repositories.NewTournamentLocker(db.DialectSQLite),
		Settings:     services.NewSettingsProvider(repositories.NewTenantSettingsRepository(sqlDB), defaultConfig),
		Points:       services.NewPointsTable(repositories.NewPointsTableRepository(sqlDB)),
		Hook:         env.hook,
		Uploader:     env.uploader,
		Metrics:      env.metrics,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return env
}

func (e *testEnv) createTournament(t *testing.T, format string) int {
	t.Helper()
	tournament := &models.Tournament{TenantID: tenant, Name: "Open de printemps", Format: format}
	require.NoError(t, repositories.NewTournamentRepository(e.db).Create(context.Background(), tournament))
	return tournament.ID
}

func (e *testEnv) saveSettings(t *testing.T, cfg models.ProgressionConfig) {
	t.Helper()
	settings := &models.TenantSettings{TenantID: tenant, ProgressionConfig: cfg}
	require.NoError(t, repositories.NewTenantSettingsRepository(e.db).Save(context.Background(), settings))
}

// resultRows builds one result row per participant. Participant ids run from
// 1 across poules; lower ids within a poule get more match-points, and every
// participant gets a distinct average.
func resultRows(sizes ...int) []models.PouleResult {
	var rows []models.PouleResult
	id := 0
	for p, size := range sizes {
		for place := 1; place <= size; place++ {
			id++
			rows = append(rows, models.PouleResult{
				PouleNumber:     p + 1,
				ParticipantID:   id,
				ParticipantName: fmt.Sprintf("Player %d", id),
				MatchPoints:     2 * (size - place),
				Points:          200 - id,
				Turns:           100,
				BestRun:         id % 7,
			})
		}
	}
	return rows
}

// newTournament creates a tournament with round-robin results for poules of
// the given sizes.
func (e *testEnv) newTournament(t *testing.T, sizes ...int) int {
	t.Helper()
	id := e.createTournament(t, models.FormatPouleKnockout)
	_, err := e.svc.ReplacePouleResults(context.Background(), id, resultRows(sizes...))
	require.NoError(t, err)
	return id
}

func (e *testEnv) match(t *testing.T, tournamentID int, phase models.Phase, order int) *models.Match {
	t.Helper()
	state, err := e.svc.GetState(context.Background(), tournamentID)
	require.NoError(t, err)
	for _, m := range state.Matches {
		if m.Phase == phase && m.Order == order {
			return m
		}
	}
	return nil
}

func (e *testEnv) record(t *testing.T, tournamentID int, phase models.Phase, order, winner int) *models.Match {
	t.Helper()
	m := e.match(t, tournamentID, phase, order)
	require.NotNil(t, m, "match %s", models.MatchKey(phase, order))
	updated, err := e.svc.RecordMatchResult(context.Background(), tournamentID, m.ID, services.MatchResultInput{
		Score1:   30,
		Score2:   21,
		WinnerID: winner,
	})
	require.NoError(t, err)
	return updated
}

// playPhase gives every resolved, undecided match of phase to player 1.
func (e *testEnv) playPhase(t *testing.T, tournamentID int, phase models.Phase) {
	t.Helper()
	state, err := e.svc.GetState(context.Background(), tournamentID)
	require.NoError(t, err)
	for _, m := range state.Matches {
		if m.Phase != phase || m.Decided() || !m.Resolved() {
			continue
		}
		e.record(t, tournamentID, phase, m.Order, *m.Player1ID)
	}
}

func positionsByParticipant(positions []*models.FinalPosition) map[int]int {
	out := make(map[int]int, len(positions))
	for _, p := range positions {
		out[p.ParticipantID] = p.Position
	}
	return out
}

func players(m *models.Match) []int {
	var out []int
	if m.Player1ID != nil {
		out = append(out, *m.Player1ID)
	}
	if m.Player2ID != nil {
		out = append(out, *m.Player2ID)
	}
	return out
}

func TestProgression_ScenarioA(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, repositories.NewPointsTableRepository(env.db).ReplaceForTenant(ctx, nil, tenant, []models.PointsRow{
		{TenantID: tenant, MinParticipants: 1, MaxParticipants: 10, Position: 1, Points: 100},
	}))
	id := env.newTournament(t, 3, 2, 2)

	gen, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, models.ModeBracket, gen.Mode)
	assert.Equal(t, models.RuleAllFirstBest2nd, gen.Rule)
	assert.Equal(t, 7, gen.TotalParticipants)
	assert.Equal(t, []int{3, 2, 2}, gen.Layout.Sizes)
	assert.Equal(t, 3, gen.Layout.TablesNeeded)
	assert.NotEmpty(t, gen.GenerationID)

	require.Len(t, gen.Qualifiers, 4)
	for i, want := range []int{1, 2, 4, 6} {
		assert.Equal(t, want, gen.Qualifiers[i].ParticipantID)
		assert.Equal(t, i+1, gen.Qualifiers[i].Seed)
	}
	require.NotNil(t, gen.Bye)
	assert.Equal(t, 3, gen.Bye.ParticipantID)
	assert.Equal(t, 5, gen.Bye.Position)

	require.Len(t, gen.Matches, 5)
	cl := env.match(t, id, models.PhaseClassificationR1, 1)
	require.NotNil(t, cl)
	assert.Equal(t, []int{5, 7}, players(cl))
	assert.Equal(t, 6, *cl.PlaceHigh)
	assert.Equal(t, 7, *cl.PlaceLow)

	_, err = env.svc.Finalize(ctx, id)
	var unfinished *services.UnfinishedMatchesError
	require.ErrorAs(t, err, &unfinished)
	assert.ErrorIs(t, err, services.ErrPrecondition)
	assert.Len(t, unfinished.MatchIDs, 5)
	assert.Equal(t, 1, env.metrics.Finalizations(metrics.OutcomeIncomplete))

	// Scenario C: both semifinals decided, the final and petite finale fill in.
	env.record(t, id, models.PhaseSemifinal, 1, 1)
	assert.Empty(t, players(env.match(t, id, models.PhaseFinal, 1)))
	env.record(t, id, models.PhaseSemifinal, 2, 4)

	final := env.match(t, id, models.PhaseFinal, 1)
	petite := env.match(t, id, models.PhasePetiteFinale, 1)
	assert.Equal(t, []int{1, 4}, players(final))
	assert.Equal(t, []int{6, 2}, players(petite))
	assert.Equal(t, 1, env.metrics.DependentPopulations(metrics.PopulationFinals))

	env.record(t, id, models.PhaseFinal, 1, 4)
	env.record(t, id, models.PhasePetiteFinale, 1, 2)
	env.record(t, id, models.PhaseClassificationR1, 1, 7)

	result, err := env.svc.Finalize(ctx, id)
	require.NoError(t, err)
	require.Len(t, result.Positions, 7)
	assert.Equal(t, map[int]int{4: 1, 1: 2, 2: 3, 6: 4, 3: 5, 7: 6, 5: 7}, positionsByParticipant(result.Positions))
	assert.Equal(t, 100, result.Positions[0].Points)
	assert.Equal(t, 6, result.Positions[1].Points)
	assert.Equal(t, 1, result.Positions[6].Points)
	assert.Equal(t, 1, env.metrics.Finalizations(metrics.OutcomeSuccess))

	calls := env.hook.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, id, calls[0].TournamentID)
	assert.Equal(t, tenant, calls[0].TenantID)
	assert.Equal(t, gen.GenerationID, calls[0].GenerationID)
	assert.Len(t, calls[0].Positions, 7)

	_, archived := env.uploader.Object(storage.StandingsKey(id))
	assert.True(t, archived)

	state, err := env.svc.GetState(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.Finalized)
	assert.Equal(t, models.ModeBracket, state.Mode)
	assert.Len(t, state.Positions, 7)
	assert.Equal(t, models.MatchKey(models.PhaseSemifinal, 1), state.Matches[0].Key())
}

func TestProgression_ScenarioB_TwoSeedBracket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.saveSettings(t, models.ProgressionConfig{BracketSize: 2, SinglePouleThreshold: 5})
	id := env.newTournament(t, 3, 3)

	gen, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RuleTop2Each, gen.Rule)
	require.Len(t, gen.Qualifiers, 2)
	assert.Nil(t, gen.Bye)

	phases := map[models.Phase]int{}
	for _, m := range gen.Matches {
		phases[m.Phase]++
	}
	assert.Equal(t, map[models.Phase]int{models.PhaseFinal: 1, models.PhaseClassificationR1: 2}, phases)

	final := env.match(t, id, models.PhaseFinal, 1)
	assert.Equal(t, []int{1, 4}, players(final))
	assert.Equal(t, 1, *final.PlaceHigh)
	assert.Equal(t, 2, *final.PlaceLow)

	env.record(t, id, models.PhaseFinal, 1, 4)
	env.playPhase(t, id, models.PhaseClassificationR1)

	result, err := env.svc.Finalize(ctx, id)
	require.NoError(t, err)
	pos := positionsByParticipant(result.Positions)
	assert.Equal(t, 1, pos[4])
	assert.Equal(t, 2, pos[1])
	assert.Len(t, pos, 6)
}

func TestProgression_ScenarioD_ClassificationRound2(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.saveSettings(t, models.ProgressionConfig{BracketSize: 4, SinglePouleThreshold: 5, EnableClassificationRound2: true})
	id := env.newTournament(t, 3, 3, 3, 3, 5)

	gen, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RuleBest4Overall, gen.Rule)
	require.Len(t, gen.NonQualified, 13)
	require.NotNil(t, gen.Bye)
	assert.Equal(t, gen.NonQualified[0].ParticipantID, gen.Bye.ParticipantID)
	assert.Equal(t, 5, gen.Bye.Position)

	r1 := 0
	for _, m := range gen.Matches {
		if m.Phase == models.PhaseClassificationR1 {
			r1++
		}
	}
	assert.Equal(t, 6, r1)

	for order := 1; order <= 5; order++ {
		m := env.match(t, id, models.PhaseClassificationR1, order)
		env.record(t, id, models.PhaseClassificationR1, order, *m.Player1ID)
	}
	assert.Nil(t, env.match(t, id, models.PhaseClassificationR2, 1))

	last := env.match(t, id, models.PhaseClassificationR1, 6)
	env.record(t, id, models.PhaseClassificationR1, 6, *last.Player1ID)
	assert.Equal(t, 1, env.metrics.DependentPopulations(metrics.PopulationRound2))

	upper := env.match(t, id, models.PhaseClassificationR1, 1)
	lower := env.match(t, id, models.PhaseClassificationR1, 2)
	r2 := env.match(t, id, models.PhaseClassificationR2, 1)
	require.NotNil(t, r2)
	assert.Equal(t, []int{*upper.Player2ID, *lower.Player2ID}, players(r2))
	assert.Equal(t, 7, *r2.PlaceHigh)
	assert.Equal(t, 9, *r2.PlaceLow)
	assert.NotNil(t, env.match(t, id, models.PhaseClassificationR2, 3))
	assert.Nil(t, env.match(t, id, models.PhaseClassificationR2, 4))

	// Round 2 is optional for finalization, so play it with an upset.
	env.record(t, id, models.PhaseClassificationR2, 1, *lower.Player2ID)
	env.playPhase(t, id, models.PhaseSemifinal)
	env.playPhase(t, id, models.PhaseFinal)
	env.playPhase(t, id, models.PhasePetiteFinale)

	result, err := env.svc.Finalize(ctx, id)
	require.NoError(t, err)
	pos := positionsByParticipant(result.Positions)
	require.Len(t, pos, 17)
	seen := map[int]bool{}
	for _, p := range pos {
		seen[p] = true
	}
	for p := 1; p <= 17; p++ {
		assert.True(t, seen[p], "position %d", p)
	}
	assert.Equal(t, 7, pos[*lower.Player2ID])
	assert.Equal(t, 9, pos[*upper.Player2ID])
	assert.Equal(t, 5, pos[gen.Bye.ParticipantID])
}

func TestProgression_SinglePoule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 4)

	gen, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ModeSinglePoule, gen.Mode)
	assert.Equal(t, models.RuleSinglePoule, gen.Rule)
	assert.Empty(t, gen.Matches)
	require.Len(t, gen.Standing, 4)
	for i, p := range gen.Standing {
		assert.Equal(t, i+1, p.ParticipantID)
		assert.Equal(t, i+1, p.Position)
	}

	result, err := env.svc.Finalize(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 3, 4: 4}, positionsByParticipant(result.Positions))
	assert.Equal(t, 4, result.Positions[0].Points)
}

func TestProgression_BelowThresholdRunsAsSinglePoule(t *testing.T) {
	env := newTestEnv(t)
	id := env.newTournament(t, 3, 2)

	gen, err := env.svc.Generate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ModeSinglePoule, gen.Mode)
	assert.Len(t, gen.Standing, 5)
}

func TestProgression_GenerateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 3, 3, 3)

	type shape struct {
		Key       string
		Players   []int
		PlaceHigh *int
		PlaceLow  *int
	}
	shapeOf := func(gen *services.GenerationResult) []shape {
		out := make([]shape, len(gen.Matches))
		for i, m := range gen.Matches {
			out[i] = shape{Key: m.Key(), Players: players(m), PlaceHigh: m.PlaceHigh, PlaceLow: m.PlaceLow}
		}
		return out
	}

	first, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	env.record(t, id, models.PhaseSemifinal, 1, *first.Matches[0].Player1ID)

	second, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)

	assert.NotEqual(t, first.GenerationID, second.GenerationID)
	assert.Equal(t, first.Qualifiers, second.Qualifiers)
	assert.Equal(t, first.NonQualified, second.NonQualified)
	assert.Equal(t, first.Bye, second.Bye)
	assert.Equal(t, shapeOf(first), shapeOf(second))

	state, err := env.svc.GetState(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.Matches, len(second.Matches))
	for _, m := range state.Matches {
		assert.False(t, m.Decided())
		assert.Equal(t, second.GenerationID, m.GenerationID)
	}
	assert.Equal(t, 2, env.metrics.Generations(string(models.ModeBracket)))
}

func TestProgression_GenerateErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Generate(ctx, 404)
	assert.ErrorIs(t, err, services.ErrTournamentNotFound)
	assert.ErrorIs(t, err, services.ErrInput)

	empty := env.createTournament(t, models.FormatPouleKnockout)
	_, err = env.svc.Generate(ctx, empty)
	assert.ErrorIs(t, err, services.ErrNoResults)

	swiss := env.createTournament(t, "swiss")
	_, err = env.svc.Generate(ctx, swiss)
	assert.ErrorIs(t, err, services.ErrConfigurationIncompatible)

	env.saveSettings(t, models.ProgressionConfig{BracketSize: 4, SinglePouleThreshold: 0})
	tiny := env.newTournament(t, 1, 2)
	_, err = env.svc.Generate(ctx, tiny)
	assert.ErrorIs(t, err, services.ErrNotEnoughParticipants)

	state, err := env.svc.GetState(ctx, tiny)
	require.NoError(t, err)
	assert.Nil(t, state.Run)
}

func TestProgression_RecordMatchResultErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 3, 2, 2)

	_, err := env.svc.RecordMatchResult(ctx, id, 1, services.MatchResultInput{WinnerID: 1})
	assert.ErrorIs(t, err, services.ErrNotGenerated)

	_, err = env.svc.Generate(ctx, id)
	require.NoError(t, err)

	sf1 := env.match(t, id, models.PhaseSemifinal, 1)
	final := env.match(t, id, models.PhaseFinal, 1)

	_, err = env.svc.RecordMatchResult(ctx, id, 9999, services.MatchResultInput{WinnerID: 1})
	assert.ErrorIs(t, err, services.ErrMatchNotFound)

	_, err = env.svc.RecordMatchResult(ctx, id, final.ID, services.MatchResultInput{WinnerID: 1})
	assert.ErrorIs(t, err, services.ErrSlotsUnresolved)
	assert.ErrorIs(t, err, services.ErrPrecondition)

	_, err = env.svc.RecordMatchResult(ctx, id, sf1.ID, services.MatchResultInput{WinnerID: 3})
	assert.ErrorIs(t, err, services.ErrWinnerNotInMatch)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = env.svc.RecordMatchResult(ctx, id, sf1.ID, services.MatchResultInput{Score1: -1, WinnerID: 1})
	assert.ErrorIs(t, err, services.ErrInvalidScore)

	other := env.newTournament(t, 3, 3)
	_, err = env.svc.RecordMatchResult(ctx, other, sf1.ID, services.MatchResultInput{WinnerID: 1})
	assert.ErrorIs(t, err, services.ErrNotGenerated)

	got := env.match(t, id, models.PhaseSemifinal, 1)
	assert.False(t, got.Decided())
	assert.Zero(t, env.metrics.ResultsRecorded(string(models.PhaseSemifinal)))
}

func TestProgression_ReRecordingResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 3, 2, 2)
	_, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)

	env.record(t, id, models.PhaseSemifinal, 1, 1)
	env.record(t, id, models.PhaseSemifinal, 2, 2)
	assert.Equal(t, []int{1, 2}, players(env.match(t, id, models.PhaseFinal, 1)))

	// Correcting a semifinal re-pairs the undecided final.
	env.record(t, id, models.PhaseSemifinal, 1, 6)
	assert.Equal(t, []int{6, 2}, players(env.match(t, id, models.PhaseFinal, 1)))
	assert.Equal(t, []int{1, 4}, players(env.match(t, id, models.PhasePetiteFinale, 1)))

	env.record(t, id, models.PhaseFinal, 1, 6)

	sf1 := env.match(t, id, models.PhaseSemifinal, 1)
	_, err = env.svc.RecordMatchResult(ctx, id, sf1.ID, services.MatchResultInput{Score1: 30, Score2: 10, WinnerID: 1})
	assert.ErrorIs(t, err, services.ErrDependentMatchDecided)

	// A score correction that keeps the winner is still accepted.
	updated, err := env.svc.RecordMatchResult(ctx, id, sf1.ID, services.MatchResultInput{Score1: 12, Score2: 30, WinnerID: 6})
	require.NoError(t, err)
	assert.Equal(t, 30, *updated.Score2)
	assert.Equal(t, []int{6, 2}, players(env.match(t, id, models.PhaseFinal, 1)))
}

func TestProgression_FinalizeIsIdempotentAndSurvivesHookFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.hook.PublishFunc = func(context.Context, events.RankingsRecompute) error {
		return errors.New("pubsub unavailable")
	}
	env.uploader.UploadFunc = func(context.Context, string, string, []byte) (*storage.UploadResult, error) {
		return nil, errors.New("bucket unavailable")
	}
	id := env.newTournament(t, 3, 3)
	_, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	for _, phase := range []models.Phase{models.PhaseSemifinal, models.PhaseFinal, models.PhasePetiteFinale, models.PhaseClassificationR1} {
		env.playPhase(t, id, phase)
	}

	first, err := env.svc.Finalize(ctx, id)
	require.NoError(t, err)
	second, err := env.svc.Finalize(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, positionsByParticipant(first.Positions), positionsByParticipant(second.Positions))
	assert.Len(t, env.hook.Calls(), 2)

	state, err := env.svc.GetState(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.Positions, 6)
}

func TestProgression_RegenerateRemovesArchivedStandings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 3, 3)
	key := storage.StandingsKey(id)

	_, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	for _, phase := range []models.Phase{models.PhaseSemifinal, models.PhaseFinal, models.PhasePetiteFinale, models.PhaseClassificationR1} {
		env.playPhase(t, id, phase)
	}
	_, err = env.svc.Finalize(ctx, id)
	require.NoError(t, err)
	_, ok := env.uploader.Object(key)
	require.True(t, ok)

	_, err = env.svc.Generate(ctx, id)
	require.NoError(t, err)

	_, ok = env.uploader.Object(key)
	assert.False(t, ok)
	assert.Contains(t, env.uploader.DeleteCalls, key)

	state, err := env.svc.GetState(ctx, id)
	require.NoError(t, err)
	assert.False(t, state.Finalized)
	assert.Empty(t, state.Positions)

	t.Run("delete failure does not fail generation", func(t *testing.T) {
		env.uploader.DeleteFunc = func(context.Context, string) error {
			return errors.New("bucket unavailable")
		}
		_, err := env.svc.Generate(ctx, id)
		require.NoError(t, err)
	})
}

func TestProgression_ConcurrentSemifinalResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 3, 3)

	_, err := env.svc.Generate(ctx, id)
	require.NoError(t, err)
	sf1 := env.match(t, id, models.PhaseSemifinal, 1)
	sf2 := env.match(t, id, models.PhaseSemifinal, 2)
	require.NotNil(t, sf1)
	require.NotNil(t, sf2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, m := range []*models.Match{sf1, sf2} {
		wg.Add(1)
		go func(i int, m *models.Match) {
			defer wg.Done()
			_, errs[i] = env.svc.RecordMatchResult(ctx, id, m.ID, services.MatchResultInput{
				Score1:   30,
				Score2:   21,
				WinnerID: *m.Player1ID,
			})
		}(i, m)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	final := env.match(t, id, models.PhaseFinal, 1)
	require.NotNil(t, final)
	assert.Equal(t, []int{*sf1.Player1ID, *sf2.Player1ID}, players(final))
	petite := env.match(t, id, models.PhasePetiteFinale, 1)
	require.NotNil(t, petite)
	assert.Equal(t, []int{*sf1.Player2ID, *sf2.Player2ID}, players(petite))
	assert.Equal(t, 1, env.metrics.DependentPopulations(metrics.PopulationFinals))
}

func TestProgression_FinalizeErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 4)

	_, err := env.svc.Finalize(ctx, id)
	assert.ErrorIs(t, err, services.ErrNotGenerated)

	_, err = env.svc.Generate(ctx, id)
	require.NoError(t, err)

	_, err = env.svc.ReplacePouleResults(ctx, id, resultRows(5))
	require.NoError(t, err)
	_, err = env.svc.Finalize(ctx, id)
	assert.ErrorIs(t, err, services.ErrStaleGeneration)
	assert.Equal(t, 2, env.metrics.Finalizations(metrics.OutcomeFailed))
}

func TestProgression_ReplacePouleResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.createTournament(t, models.FormatPouleKnockout)

	_, err := env.svc.ReplacePouleResults(ctx, id, nil)
	assert.ErrorIs(t, err, services.ErrNoResults)

	rows := append(resultRows(3, 3), models.PouleResult{PouleNumber: 2, ParticipantID: 1, ParticipantName: "Player 1", Turns: 10})
	_, err = env.svc.ReplacePouleResults(ctx, id, rows)
	assert.ErrorIs(t, err, services.ErrInvalidResults)

	_, err = env.svc.ReplacePouleResults(ctx, 404, resultRows(3))
	assert.ErrorIs(t, err, services.ErrTournamentNotFound)

	poules, err := env.svc.ReplacePouleResults(ctx, id, resultRows(3, 3))
	require.NoError(t, err)
	require.Len(t, poules, 2)
	assert.Equal(t, 1, poules[0].Standings[0].Place)
}

func TestProgression_StateBeforeGeneration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.newTournament(t, 3, 2, 2)

	state, err := env.svc.GetState(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, state.Run)
	assert.Equal(t, models.ModeBracket, state.Mode)
	assert.Len(t, state.Poules, 3)
	assert.Empty(t, state.Matches)
	assert.False(t, state.Finalized)

	_, err = env.svc.GetState(ctx, 404)
	assert.ErrorIs(t, err, services.ErrTournamentNotFound)
}
