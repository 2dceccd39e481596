// Package captable derives the ownership and voting picture from the active
// share entries. Compute is a pure function: it never mutates its inputs and
// is safe to call concurrently and repeatedly.
package captable

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
)

// Compute aggregates active entries and active shareholders into a Summary.
// Classes appear in the order first encountered while scanning; shareholders
// are sorted by ownership percentage descending. With zero total shares every
// percentage is 0, never NaN.
func Compute(entries []*shareentry.Entry, holders []*shareholder.Shareholder) *Summary {
	names := make(map[uuid.UUID]string, len(holders))
	for _, h := range holders {
		names[h.ID] = h.Name
	}

	summary := &Summary{LastUpdated: time.Now()}

	classIndex := make(map[shared.ShareClass]int)
	holderIndex := make(map[uuid.UUID]int)

	for _, e := range entries {
		if !e.IsActive {
			continue
		}

		votes := e.NumberOfShares * e.VotesPerShare

		summary.TotalShares += e.NumberOfShares
		summary.TotalShareCapital += float64(e.NumberOfShares) * e.NominalValue
		summary.TotalVotes += votes

		ci, ok := classIndex[e.ShareClass]
		if !ok {
			ci = len(summary.ShareClasses)
			classIndex[e.ShareClass] = ci
			summary.ShareClasses = append(summary.ShareClasses, ClassSummary{ShareClass: e.ShareClass})
		}
		class := &summary.ShareClasses[ci]
		class.TotalShares += e.NumberOfShares
		class.TotalVotes += votes
		class.TotalNominal += float64(e.NumberOfShares) * e.NominalValue
		// All active entries of a class carry the same voting weight; the
		// ledger rejects transactions that would break this.
		class.VotesPerShare = e.VotesPerShare

		hi, ok := holderIndex[e.ShareholderID]
		if !ok {
			hi = len(summary.Shareholders)
			holderIndex[e.ShareholderID] = hi
			summary.Shareholders = append(summary.Shareholders, HolderSummary{
				ShareholderID: e.ShareholderID,
				Name:          names[e.ShareholderID],
				SharesByClass: make(map[shared.ShareClass]int64),
			})
		}
		holder := &summary.Shareholders[hi]
		holder.TotalShares += e.NumberOfShares
		holder.TotalVotes += votes
		holder.SharesByClass[e.ShareClass] += e.NumberOfShares
	}

	for i := range summary.ShareClasses {
		c := &summary.ShareClasses[i]
		c.PercentOfShares = percentage(c.TotalShares, summary.TotalShares)
		c.PercentOfVotes = percentage(c.TotalVotes, summary.TotalVotes)
	}
	for i := range summary.Shareholders {
		h := &summary.Shareholders[i]
		h.OwnershipPercentage = percentage(h.TotalShares, summary.TotalShares)
		h.VotingPercentage = percentage(h.TotalVotes, summary.TotalVotes)
	}

	sort.SliceStable(summary.Shareholders, func(i, j int) bool {
		a, b := summary.Shareholders[i], summary.Shareholders[j]
		if a.OwnershipPercentage != b.OwnershipPercentage {
			return a.OwnershipPercentage > b.OwnershipPercentage
		}
		return a.Name < b.Name
	})

	return summary
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
