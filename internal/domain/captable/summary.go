package captable

import (
	"time"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
)

// ClassSummary holds per-class totals and voting power
type ClassSummary struct {
	ShareClass      shared.ShareClass `json:"share_class"`
	TotalShares     int64             `json:"total_shares"`
	TotalVotes      int64             `json:"total_votes"`
	VotesPerShare   int64             `json:"votes_per_share"`
	PercentOfShares float64           `json:"percent_of_shares"`
	PercentOfVotes  float64           `json:"percent_of_votes"`
	TotalNominal    float64           `json:"total_nominal"`
}

// HolderSummary holds one shareholder's totals and percentages
type HolderSummary struct {
	ShareholderID       uuid.UUID                   `json:"shareholder_id"`
	Name                string                      `json:"name"`
	TotalShares         int64                       `json:"total_shares"`
	TotalVotes          int64                       `json:"total_votes"`
	OwnershipPercentage float64                     `json:"ownership_percentage"`
	VotingPercentage    float64                     `json:"voting_percentage"`
	SharesByClass       map[shared.ShareClass]int64 `json:"shares_by_class"`
}

// Summary is the derived ownership and voting picture. It is never stored;
// it is recomputed from active entries and shareholders on every request.
type Summary struct {
	TotalShares       int64           `json:"total_shares"`
	TotalShareCapital float64         `json:"total_share_capital"`
	TotalVotes        int64           `json:"total_votes"`
	ShareClasses      []ClassSummary  `json:"share_classes"`
	Shareholders      []HolderSummary `json:"shareholders"`
	LastUpdated       time.Time       `json:"last_updated"`
}
