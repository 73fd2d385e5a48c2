package models

import (
	"errors"
	"fmt"
)

// Mode is the way a tournament progresses after the poules.
type Mode string

const (
	ModeSinglePoule Mode = "single_poule"
	ModeBracket     Mode = "bracket"
)

// QualificationRule selects bracket candidates from the poule standings.
type QualificationRule string

const (
	RuleSinglePoule     QualificationRule = "single_poule"
	RuleTop2Each        QualificationRule = "top2_each"
	RuleAllFirstBest2nd QualificationRule = "all_1st_best_2nd"
	RuleAllFirst        QualificationRule = "all_1st"
	RuleBest4Overall    QualificationRule = "best_4_overall"
)

var ErrInvalidProgressionConfig = errors.New("invalid progression configuration")

// ProgressionConfig holds the per-tenant values read at generation time.
// It is passed by value into every stage and never mutated.
type ProgressionConfig struct {
	BracketSize                int  `json:"bracket_size" db:"bracket_size"`
	SinglePouleThreshold       int  `json:"single_poule_threshold" db:"single_poule_threshold"`
	AllowPouleOfTwo            bool `json:"allow_poule_of_two" db:"allow_poule_of_two"`
	EnableClassificationRound2 bool `json:"enable_classification_round2" db:"enable_classification_round2"`
}

// Validate checks the values are in their allowed ranges.
func (c ProgressionConfig) Validate() error {
	if c.BracketSize != 2 && c.BracketSize != 4 {
		return fmt.Errorf("%w: bracket size must be 2 or 4, got %d", ErrInvalidProgressionConfig, c.BracketSize)
	}
	if c.SinglePouleThreshold < 0 {
		return fmt.Errorf("%w: single poule threshold must not be negative, got %d", ErrInvalidProgressionConfig, c.SinglePouleThreshold)
	}
	return nil
}
