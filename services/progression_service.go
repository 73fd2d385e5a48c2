package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/brackets"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/events"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/metrics"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/repositories"
	"github.com/Jeff92400/Carambole-tournament-management-sub001/storage"
)

const (
	operationGenerate = "generate"
	operationRecord   = "record_result"
	operationFinalize = "finalize"
)

type MatchResultInput struct {
	Score1   int `json:"score1"`
	Score2   int `json:"score2"`
	WinnerID int `json:"winner_id"`
}

// GenerationResult is the structure produced by a generation run. In
// single_poule mode Standing holds the direct final order and no matches exist.
type GenerationResult struct {
	TournamentID      int                      `json:"tournament_id"`
	GenerationID      string                   `json:"generation_id"`
	Mode              models.Mode              `json:"mode"`
	Rule              models.QualificationRule `json:"qualification_rule"`
	TotalParticipants int                      `json:"total_participants"`
	Layout            brackets.PouleLayout     `json:"layout"`
	Poules            []models.Poule           `json:"poules"`
	Qualifiers        []models.Qualifier       `json:"qualifiers,omitempty"`
	NonQualified      []models.Standing        `json:"non_qualified,omitempty"`
	Bye               *brackets.ByeAssignment  `json:"bye,omitempty"`
	Matches           []*models.Match          `json:"matches"`
	Standing          []brackets.Placement     `json:"standing,omitempty"`
}

type FinalizationResult struct {
	TournamentID      int                     `json:"tournament_id"`
	GenerationID      string                  `json:"generation_id"`
	Mode              models.Mode             `json:"mode"`
	TotalParticipants int                     `json:"total_participants"`
	FinalizedAt       time.Time               `json:"finalized_at"`
	Positions         []*models.FinalPosition `json:"positions"`
}

// TournamentState is the read model used for display.
type TournamentState struct {
	Tournament *models.Tournament      `json:"tournament"`
	Mode       models.Mode             `json:"mode"`
	Run        *models.ProgressionRun  `json:"run,omitempty"`
	Poules     []models.Poule          `json:"poules"`
	Matches    []*models.Match         `json:"matches"`
	Positions  []*models.FinalPosition `json:"positions"`
	Finalized  bool                    `json:"finalized"`
}

type ProgressionService interface {
	Generate(ctx context.Context, tournamentID int) (*GenerationResult, error)
	RecordMatchResult(ctx context.Context, tournamentID, matchID int, input MatchResultInput) (*models.Match, error)
	Finalize(ctx context.Context, tournamentID int) (*FinalizationResult, error)
	GetState(ctx context.Context, tournamentID int) (*TournamentState, error)
	ReplacePouleResults(ctx context.Context, tournamentID int, rows []models.PouleResult) ([]models.Poule, error)
}

// ProgressionServiceDeps groups the collaborators of the progression service.
// Hook and Logger are optional; a nil Uploader disables the standings archive.
type ProgressionServiceDeps struct {
	DB           *sql.DB
	Tournaments  repositories.TournamentRepository
	PouleResults repositories.PouleResultRepository
	Matches      repositories.MatchRepository
	Runs         repositories.ProgressionRunRepository
	Positions    repositories.FinalPositionRepository
	Locker       repositories.TournamentLocker
	Settings     SettingsProvider
	Points       PointsTable
	Hook         events.RankingsHook
	Uploader     storage.FileUploader
	Metrics      metrics.Metrics
	Logger       *slog.Logger
}

type progressionService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	pouleResultRepo repositories.PouleResultRepository
	matchRepo       repositories.MatchRepository
	runRepo         repositories.ProgressionRunRepository
	positionRepo    repositories.FinalPositionRepository
	locker          repositories.TournamentLocker
	settings        SettingsProvider
	points          PointsTable
	hook            events.RankingsHook
	uploader        storage.FileUploader
	metrics         metrics.Metrics
	logger          *slog.Logger

	bracketGenerator        brackets.BracketGenerator
	classificationGenerator brackets.BracketGenerator

	locks tournamentLocks
}

func NewProgressionService(deps ProgressionServiceDeps) ProgressionService {
	if deps.Hook == nil {
		deps.Hook = events.NewNoopHook()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &progressionService{
		db:                      deps.DB,
		tournamentRepo:          deps.Tournaments,
		pouleResultRepo:         deps.PouleResults,
		matchRepo:               deps.Matches,
		runRepo:                 deps.Runs,
		positionRepo:            deps.Positions,
		locker:                  deps.Locker,
		settings:                deps.Settings,
		points:                  deps.Points,
		hook:                    deps.Hook,
		uploader:                deps.Uploader,
		metrics:                 deps.Metrics,
		logger:                  deps.Logger,
		bracketGenerator:        brackets.NewSingleEliminationGenerator(),
		classificationGenerator: brackets.NewClassificationGenerator(),
	}
}

func (s *progressionService) Generate(ctx context.Context, tournamentID int) (*GenerationResult, error) {
	defer s.observe(operationGenerate, time.Now())

	release := s.locks.acquire(tournamentID)
	defer release()

	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Format != models.FormatPouleKnockout {
		return nil, fmt.Errorf("%w: tournament %d uses format %q", ErrConfigurationIncompatible, tournamentID, tournament.Format)
	}
	cfg, err := s.settings.ProgressionConfig(ctx, tournament.TenantID)
	if err != nil {
		return nil, err
	}

	var result *GenerationResult
	err = withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.locker.LockTournament(ctx, tx, tournamentID); err != nil {
			return err
		}

		rows, err := s.pouleResultRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNoResults
		}
		poules, err := brackets.AggregateStandings(rows)
		if err != nil {
			return mapBracketError(err)
		}

		if err := s.clearProgression(ctx, tx, tournamentID); err != nil {
			return err
		}

		result, err = s.buildProgression(ctx, tx, tournamentID, cfg, poules)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncGenerations(string(result.Mode))
	s.logger.InfoContext(ctx, "Progression generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("generation_id", result.GenerationID),
		slog.String("mode", string(result.Mode)),
		slog.String("rule", string(result.Rule)),
		slog.Int("participants", result.TotalParticipants),
		slog.Int("matches", len(result.Matches)),
	)
	s.removeArchive(ctx, tournamentID)
	return result, nil
}

// removeArchive drops the standings archived by an earlier finalization, which
// regeneration has made stale.
func (s *progressionService) removeArchive(ctx context.Context, tournamentID int) {
	if s.uploader == nil {
		return
	}
	key := storage.StandingsKey(tournamentID)
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove archived final standings",
			slog.Int("tournament_id", tournamentID),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (s *progressionService) clearProgression(ctx context.Context, tx *sql.Tx, tournamentID int) error {
	if err := s.positionRepo.DeleteByTournament(ctx, tx, tournamentID); err != nil {
		return err
	}
	if err := s.matchRepo.DeleteByTournament(ctx, tx, tournamentID); err != nil {
		return err
	}
	return s.runRepo.DeleteByTournament(ctx, tx, tournamentID)
}

func (s *progressionService) buildProgression(ctx context.Context, tx *sql.Tx, tournamentID int, cfg models.ProgressionConfig, poules []models.Poule) (*GenerationResult, error) {
	sizes := pouleSizes(poules)
	result := &GenerationResult{
		TournamentID:      tournamentID,
		GenerationID:      uuid.NewString(),
		Mode:              deriveMode(cfg, poules),
		TotalParticipants: totalParticipants(poules),
		Layout:            brackets.PouleLayout{Sizes: sizes, TablesNeeded: brackets.TablesNeeded(sizes)},
		Poules:            poules,
		Matches:           []*models.Match{},
	}

	if result.Mode == models.ModeSinglePoule {
		result.Rule = models.RuleSinglePoule
		standing, err := brackets.AssignPositions(brackets.PositionInput{
			Mode:    models.ModeSinglePoule,
			Ranking: brackets.OverallRanking(poules),
		})
		if err != nil {
			return nil, mapBracketError(err)
		}
		result.Standing = standing
	} else {
		qualification, err := brackets.SelectQualifiers(poules, cfg.BracketSize)
		if err != nil {
			return nil, mapBracketError(err)
		}
		result.Rule = qualification.Rule
		result.Qualifiers = qualification.Qualifiers
		result.NonQualified = qualification.NonQualified

		params := brackets.GenerateBracketParams{
			TournamentID: tournamentID,
			Config:       cfg,
			Qualifiers:   qualification.Qualifiers,
			NonQualified: qualification.NonQualified,
		}
		bracket, err := s.bracketGenerator.GenerateBracket(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s matches for tournament %d: %w", s.bracketGenerator.GetName(), tournamentID, mapBracketError(err))
		}
		classification, err := s.classificationGenerator.GenerateBracket(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s matches for tournament %d: %w", s.classificationGenerator.GetName(), tournamentID, mapBracketError(err))
		}

		for _, bm := range slices.Concat(bracket, classification) {
			if bm.IsBye {
				// Byes are not played; the seat is kept on the run row.
				result.Bye = &brackets.ByeAssignment{ParticipantID: *bm.ByeParticipantID, Position: *bm.PlaceHigh}
				continue
			}
			match := &models.Match{
				TournamentID: tournamentID,
				GenerationID: result.GenerationID,
				Phase:        bm.Phase,
				Order:        bm.Order,
				Player1ID:    bm.Participant1ID,
				Player2ID:    bm.Participant2ID,
				PlaceHigh:    bm.PlaceHigh,
				PlaceLow:     bm.PlaceLow,
			}
			if err := s.matchRepo.Create(ctx, tx, match); err != nil {
				return nil, fmt.Errorf("failed to create match %s for tournament %d: %w", bm.Key(), tournamentID, err)
			}
			result.Matches = append(result.Matches, match)
		}
	}

	run := &models.ProgressionRun{
		TournamentID:               tournamentID,
		GenerationID:               result.GenerationID,
		Mode:                       result.Mode,
		Rule:                       result.Rule,
		BracketSize:                cfg.BracketSize,
		EnableClassificationRound2: cfg.EnableClassificationRound2,
		TotalParticipants:          result.TotalParticipants,
	}
	if result.Bye != nil {
		run.ByeParticipantID = intPtr(result.Bye.ParticipantID)
		run.ByePosition = intPtr(result.Bye.Position)
	}
	if err := s.runRepo.Save(ctx, tx, run); err != nil {
		return nil, fmt.Errorf("failed to save progression run for tournament %d: %w", tournamentID, err)
	}
	return result, nil
}

func (s *progressionService) RecordMatchResult(ctx context.Context, tournamentID, matchID int, input MatchResultInput) (*models.Match, error) {
	defer s.observe(operationRecord, time.Now())

	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, ErrInvalidScore
	}

	release := s.locks.acquire(tournamentID)
	defer release()

	var updated *models.Match
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.locker.LockTournament(ctx, tx, tournamentID); err != nil {
			return err
		}
		if _, err := s.tournamentRepo.GetByID(ctx, tx, tournamentID); err != nil {
			return mapRepositoryError(err)
		}
		run, err := s.runRepo.GetByTournament(ctx, tx, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		matches, err := s.matchRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(matches, func(m *models.Match) bool { return m.ID == matchID })
		if idx < 0 {
			return fmt.Errorf("%w: match %d in tournament %d", ErrMatchNotFound, matchID, tournamentID)
		}
		match := matches[idx]

		if !match.Resolved() {
			return fmt.Errorf("%w: match %d (%s)", ErrSlotsUnresolved, match.ID, match.Key())
		}
		if !match.HasPlayer(input.WinnerID) {
			return fmt.Errorf("%w: participant %d in match %d", ErrWinnerNotInMatch, input.WinnerID, match.ID)
		}

		if match.Decided() && *match.WinnerID != input.WinnerID {
			graph, err := brackets.NewMatchGraph(matches, run.EnableClassificationRound2)
			if err != nil {
				return fmt.Errorf("failed to build match graph for tournament %d: %w", tournamentID, err)
			}
			for _, dep := range graph.Dependants(match.Key()) {
				if d := findMatch(matches, dep.Key); d != nil && d.Decided() {
					return fmt.Errorf("%w: %s depends on %s", ErrDependentMatchDecided, dep.Key, match.Key())
				}
			}
		}

		score1, score2, winnerID := input.Score1, input.Score2, input.WinnerID
		if err := s.matchRepo.UpdateResult(ctx, tx, match.ID, &score1, &score2, &winnerID); err != nil {
			return mapRepositoryError(err)
		}
		match.Score1, match.Score2, match.WinnerID = &score1, &score2, &winnerID

		if err := s.populateDependents(ctx, tx, run, matches); err != nil {
			return err
		}

		updated, err = s.matchRepo.GetByID(ctx, tx, match.ID)
		return mapRepositoryError(err)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncResultsRecorded(string(updated.Phase))
	s.logger.InfoContext(ctx, "Match result recorded",
		slog.Int("tournament_id", tournamentID),
		slog.Int("match_id", updated.ID),
		slog.String("match", updated.Key()),
		slog.Int("winner_id", *updated.WinnerID),
	)
	return updated, nil
}

// populateDependents fills the matches whose players come from results that
// are now known. It runs after every result write and is a no-op when nothing
// changed.
func (s *progressionService) populateDependents(ctx context.Context, tx *sql.Tx, run *models.ProgressionRun, matches []*models.Match) error {
	if assignments, ok := brackets.ResolveFinals(matches); ok {
		changed, err := s.applyAssignments(ctx, tx, matches, assignments)
		if err != nil {
			return err
		}
		if changed > 0 {
			s.metrics.IncDependentPopulations(metrics.PopulationFinals)
			s.logger.InfoContext(ctx, "Final and petite finale populated", slog.Int("tournament_id", run.TournamentID))
		}
	}

	if !run.EnableClassificationRound2 {
		return nil
	}

	round2 := brackets.ResolveClassificationRound2(matches)
	if !brackets.ShouldTriggerRound2(run.EnableClassificationRound2, matches) {
		// Round 2 already exists or round 1 is incomplete; keep existing
		// pairings in line with corrected round-1 results.
		assignments := make([]brackets.SlotAssignment, 0, len(round2))
		for _, bm := range round2 {
			if findMatch(matches, bm.Key()) == nil {
				continue
			}
			assignments = append(assignments, brackets.SlotAssignment{
				Phase:     bm.Phase,
				Order:     bm.Order,
				Player1ID: *bm.Participant1ID,
				Player2ID: *bm.Participant2ID,
			})
		}
		_, err := s.applyAssignments(ctx, tx, matches, assignments)
		return err
	}

	for _, bm := range round2 {
		match := &models.Match{
			TournamentID: run.TournamentID,
			GenerationID: run.GenerationID,
			Phase:        bm.Phase,
			Order:        bm.Order,
			Player1ID:    bm.Participant1ID,
			Player2ID:    bm.Participant2ID,
			PlaceHigh:    bm.PlaceHigh,
			PlaceLow:     bm.PlaceLow,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return fmt.Errorf("failed to create match %s for tournament %d: %w", bm.Key(), run.TournamentID, err)
		}
	}
	if len(round2) > 0 {
		s.metrics.IncDependentPopulations(metrics.PopulationRound2)
		s.logger.InfoContext(ctx, "Classification round 2 created",
			slog.Int("tournament_id", run.TournamentID),
			slog.Int("matches", len(round2)),
		)
	}
	return nil
}

func (s *progressionService) applyAssignments(ctx context.Context, tx *sql.Tx, matches []*models.Match, assignments []brackets.SlotAssignment) (int, error) {
	changed := 0
	for _, a := range assignments {
		target := findMatch(matches, a.Key())
		if target == nil {
			continue
		}
		if sameSlot(target.Player1ID, a.Player1ID) && sameSlot(target.Player2ID, a.Player2ID) {
			continue
		}
		if target.Decided() {
			return changed, fmt.Errorf("%w: %s", ErrDependentMatchDecided, a.Key())
		}

		p1, p2 := a.Player1ID, a.Player2ID
		if err := s.matchRepo.UpdatePlayers(ctx, tx, target.ID, &p1, &p2); err != nil {
			return changed, mapRepositoryError(err)
		}
		target.Player1ID, target.Player2ID = &p1, &p2
		changed++
	}
	return changed, nil
}

func (s *progressionService) Finalize(ctx context.Context, tournamentID int) (*FinalizationResult, error) {
	defer s.observe(operationFinalize, time.Now())

	release := s.locks.acquire(tournamentID)
	defer release()

	result, tournament, err := s.finalize(ctx, tournamentID)
	if err != nil {
		outcome := metrics.OutcomeFailed
		var unfinished *UnfinishedMatchesError
		if errors.As(err, &unfinished) {
			outcome = metrics.OutcomeIncomplete
		}
		s.metrics.IncFinalizations(outcome)
		return nil, err
	}

	s.metrics.IncFinalizations(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "Tournament finalized",
		slog.Int("tournament_id", tournamentID),
		slog.String("generation_id", result.GenerationID),
		slog.Int("participants", result.TotalParticipants),
	)

	s.afterFinalize(ctx, tournament, result)
	return result, nil
}

func (s *progressionService) finalize(ctx context.Context, tournamentID int) (*FinalizationResult, *models.Tournament, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	pointsRows, err := s.points.PointsRows(ctx, tournament.TenantID)
	if err != nil {
		return nil, nil, err
	}

	var result *FinalizationResult
	err = withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.locker.LockTournament(ctx, tx, tournamentID); err != nil {
			return err
		}
		run, err := s.runRepo.GetByTournament(ctx, tx, tournamentID)
		if err != nil {
			return mapRepositoryError(err)
		}
		matches, err := s.matchRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		rows, err := s.pouleResultRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		poules, err := brackets.AggregateStandings(rows)
		if err != nil {
			return mapBracketError(err)
		}

		ranking := brackets.OverallRanking(poules)
		if len(ranking) != run.TotalParticipants {
			return fmt.Errorf("%w: %d participants now, %d at generation", ErrStaleGeneration, len(ranking), run.TotalParticipants)
		}

		if run.Mode == models.ModeBracket {
			if ids := brackets.UnfinishedMatches(matches); len(ids) > 0 {
				return &UnfinishedMatchesError{MatchIDs: ids}
			}
		}

		input := brackets.PositionInput{Mode: run.Mode, Ranking: ranking, Matches: matches}
		if run.ByeParticipantID != nil && run.ByePosition != nil {
			input.Bye = &brackets.ByeAssignment{ParticipantID: *run.ByeParticipantID, Position: *run.ByePosition}
		}
		placements, err := brackets.AssignPositions(input)
		if err != nil {
			return mapBracketError(err)
		}

		finalizedAt := time.Now().UTC()
		positions := make([]*models.FinalPosition, 0, len(placements))
		for _, p := range placements {
			positions = append(positions, &models.FinalPosition{
				TournamentID:  tournamentID,
				ParticipantID: p.ParticipantID,
				Name:          p.Name,
				Position:      p.Position,
				Points:        brackets.PointsFor(pointsRows, len(placements), p.Position),
				FinalizedAt:   finalizedAt,
			})
		}
		if err := s.positionRepo.ReplaceForTournament(ctx, tx, tournamentID, positions); err != nil {
			if errors.Is(err, repositories.ErrPositionConflict) {
				return fmt.Errorf("%w: %v", ErrPositionsInconsistent, err)
			}
			return err
		}

		result = &FinalizationResult{
			TournamentID:      tournamentID,
			GenerationID:      run.GenerationID,
			Mode:              run.Mode,
			TotalParticipants: len(placements),
			FinalizedAt:       finalizedAt,
			Positions:         positions,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, tournament, nil
}

// afterFinalize notifies downstream consumers once positions are committed.
// Failures are logged only; the committed positions stand.
func (s *progressionService) afterFinalize(ctx context.Context, tournament *models.Tournament, result *FinalizationResult) {
	event := events.RankingsRecompute{
		TournamentID:      tournament.ID,
		TenantID:          tournament.TenantID,
		GenerationID:      result.GenerationID,
		TotalParticipants: result.TotalParticipants,
		FinalizedAt:       result.FinalizedAt,
		Positions:         make([]events.PositionSnapshot, 0, len(result.Positions)),
	}
	for _, p := range result.Positions {
		event.Positions = append(event.Positions, events.PositionSnapshot{
			ParticipantID: p.ParticipantID,
			Name:          p.Name,
			Position:      p.Position,
			Points:        p.Points,
		})
	}
	if err := s.hook.PublishRankingsRecompute(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish rankings recompute",
			slog.Int("tournament_id", tournament.ID),
			slog.Any("error", err),
		)
	}

	if s.uploader == nil {
		return
	}
	uploaded, err := storage.UploadJSON(ctx, s.uploader, storage.StandingsKey(tournament.ID), result)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to archive final standings",
			slog.Int("tournament_id", tournament.ID),
			slog.Any("error", err),
		)
		return
	}
	s.logger.InfoContext(ctx, "Final standings archived",
		slog.Int("tournament_id", tournament.ID),
		slog.String("key", uploaded.Key),
		slog.String("location", uploaded.Location),
	)
}

func (s *progressionService) GetState(ctx context.Context, tournamentID int) (*TournamentState, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var (
		run       *models.ProgressionRun
		matches   []*models.Match
		rows      []models.PouleResult
		positions []*models.FinalPosition
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.runRepo.GetByTournament(gctx, nil, tournamentID)
		if errors.Is(err, repositories.ErrRunNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load progression run for tournament %d: %w", tournamentID, err)
		}
		run = r
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.pouleResultRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		positions, err = s.positionRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	state := &TournamentState{
		Tournament: tournament,
		Run:        run,
		Poules:     []models.Poule{},
		Matches:    matches,
		Positions:  positions,
		Finalized:  len(positions) > 0,
	}
	if len(rows) > 0 {
		poules, err := brackets.AggregateStandings(rows)
		if err != nil {
			return nil, mapBracketError(err)
		}
		state.Poules = poules
	}

	if run == nil {
		cfg, err := s.settings.ProgressionConfig(ctx, tournament.TenantID)
		if err != nil {
			return nil, err
		}
		state.Mode = deriveMode(cfg, state.Poules)
		return state, nil
	}

	state.Mode = run.Mode
	graph, err := brackets.NewMatchGraph(matches, run.EnableClassificationRound2)
	if err != nil {
		return nil, fmt.Errorf("failed to build match graph for tournament %d: %w", tournamentID, err)
	}
	order, err := graph.Ordered()
	if err != nil {
		return nil, fmt.Errorf("failed to order matches for tournament %d: %w", tournamentID, err)
	}
	ordered := make([]*models.Match, 0, len(matches))
	for _, key := range order {
		if m := findMatch(matches, key); m != nil {
			ordered = append(ordered, m)
		}
	}
	state.Matches = ordered
	return state, nil
}

func (s *progressionService) ReplacePouleResults(ctx context.Context, tournamentID int, rows []models.PouleResult) ([]models.Poule, error) {
	if len(rows) == 0 {
		return nil, ErrNoResults
	}

	normalized := make([]models.PouleResult, len(rows))
	for i, row := range rows {
		row.ID = 0
		row.TournamentID = tournamentID
		normalized[i] = row
	}
	poules, err := brackets.AggregateStandings(normalized)
	if err != nil {
		return nil, mapBracketError(err)
	}

	release := s.locks.acquire(tournamentID)
	defer release()

	err = withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.locker.LockTournament(ctx, tx, tournamentID); err != nil {
			return err
		}
		if _, err := s.tournamentRepo.GetByID(ctx, tx, tournamentID); err != nil {
			return mapRepositoryError(err)
		}
		return mapRepositoryError(s.pouleResultRepo.ReplaceForTournament(ctx, tx, tournamentID, normalized))
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Poule results replaced",
		slog.Int("tournament_id", tournamentID),
		slog.Int("rows", len(normalized)),
		slog.Int("poules", len(poules)),
	)
	return poules, nil
}

func (s *progressionService) loadTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTournamentNotFound, tournamentID)
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}

func (s *progressionService) observe(operation string, start time.Time) {
	s.metrics.ObserveOperationDuration(operation, time.Since(start).Seconds())
}
