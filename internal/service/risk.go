package service

import (
	"renolab/internal/domain"
)

// RiskConfirmationWord is the exact literal a risky-share creation form
// requires the owner to type. The match is case-sensitive and happens in the
// UI; the server only classifies.
const RiskConfirmationWord = "SHARE"

const riskyGroupThreshold = 3

type RiskClassification struct {
	Risky            bool   `json:"risky"`
	GroupCount       int    `json:"group_count"`
	ConfirmationWord string `json:"confirmation_word,omitempty"`
}

// ClassifyRisk flags broad disclosure of private free-text or photo content:
// notes or photos included, unscoped, across three or more groups. A narrowly
// scoped or fully redacted link is never risky.
func ClassifyRisk(flags domain.ShareFlags, scope domain.Scope, totalGroupCount int) RiskClassification {
	risky := (flags.IncludeNotes || flags.IncludePhotos) &&
		scope.Mode == domain.ScopeModeAll &&
		totalGroupCount >= riskyGroupThreshold

	classification := RiskClassification{
		Risky:      risky,
		GroupCount: totalGroupCount,
	}
	if risky {
		classification.ConfirmationWord = RiskConfirmationWord
	}

	return classification
}
