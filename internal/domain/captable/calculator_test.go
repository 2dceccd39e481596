package captable

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
)

func entry(t *testing.T, holderID uuid.UUID, class shared.ShareClass, from, to int64, nominal float64, votes int64) *shareentry.Entry {
	t.Helper()
	e, err := shareentry.NewEntry("tenant-acme", holderID, class, from, to, nominal, votes)
	require.NoError(t, err)
	return e
}

func holder(t *testing.T, name string) *shareholder.Shareholder {
	t.Helper()
	h, err := shareholder.NewShareholder("tenant-acme", name, shared.ShareholderTypeIndividual, "", "", "")
	require.NoError(t, err)
	return h
}

func TestCompute(t *testing.T) {
	t.Run("TwoClassesTwoHolders", func(t *testing.T) {
		alice := holder(t, "Astrid Lindqvist")
		bob := holder(t, "Nordic Holdings AB")

		// A class: 10 votes per share, B class: 1 vote per share.
		entries := []*shareentry.Entry{
			entry(t, alice.ID, shared.ShareClassA, 1, 600, 1, 10),
			entry(t, bob.ID, shared.ShareClassA, 601, 1000, 1, 10),
			entry(t, bob.ID, shared.ShareClassB, 1, 1000, 1, 1),
		}

		summary := Compute(entries, []*shareholder.Shareholder{alice, bob})

		assert.Equal(t, int64(2000), summary.TotalShares)
		assert.InDelta(t, 2000, summary.TotalShareCapital, 1e-9)
		assert.Equal(t, int64(11000), summary.TotalVotes)
		assert.False(t, summary.LastUpdated.IsZero())

		require.Len(t, summary.ShareClasses, 2)
		classA := summary.ShareClasses[0]
		assert.Equal(t, shared.ShareClassA, classA.ShareClass)
		assert.Equal(t, int64(1000), classA.TotalShares)
		assert.Equal(t, int64(10), classA.VotesPerShare)
		assert.InDelta(t, 50, classA.PercentOfShares, 1e-9)
		assert.InDelta(t, 10000.0/11000.0*100, classA.PercentOfVotes, 1e-9)
		classB := summary.ShareClasses[1]
		assert.Equal(t, shared.ShareClassB, classB.ShareClass)
		assert.InDelta(t, 1000.0/11000.0*100, classB.PercentOfVotes, 1e-9)

		// Bob holds 70% of shares but the A-heavy voting tilts differently
		require.Len(t, summary.Shareholders, 2)
		first := summary.Shareholders[0]
		assert.Equal(t, bob.ID, first.ShareholderID)
		assert.Equal(t, "Nordic Holdings AB", first.Name)
		assert.Equal(t, int64(1400), first.TotalShares)
		assert.InDelta(t, 70, first.OwnershipPercentage, 1e-9)
		assert.InDelta(t, 5000.0/11000.0*100, first.VotingPercentage, 1e-9)
		assert.Equal(t, int64(400), first.SharesByClass[shared.ShareClassA])
		assert.Equal(t, int64(1000), first.SharesByClass[shared.ShareClassB])

		second := summary.Shareholders[1]
		assert.Equal(t, alice.ID, second.ShareholderID)
		assert.InDelta(t, 30, second.OwnershipPercentage, 1e-9)
		assert.InDelta(t, 6000.0/11000.0*100, second.VotingPercentage, 1e-9)
	})

	t.Run("InactiveEntriesIgnored", func(t *testing.T) {
		alice := holder(t, "Astrid Lindqvist")

		active := entry(t, alice.ID, shared.ShareClassA, 1, 500, 1, 1)
		retired := entry(t, alice.ID, shared.ShareClassA, 501, 1000, 1, 1)
		retired.IsActive = false

		summary := Compute([]*shareentry.Entry{active, retired}, []*shareholder.Shareholder{alice})

		assert.Equal(t, int64(500), summary.TotalShares)
		require.Len(t, summary.Shareholders, 1)
		assert.InDelta(t, 100, summary.Shareholders[0].OwnershipPercentage, 1e-9)
	})

	t.Run("EmptyRegistryYieldsZeroesNotNaN", func(t *testing.T) {
		summary := Compute(nil, nil)

		assert.Zero(t, summary.TotalShares)
		assert.Zero(t, summary.TotalVotes)
		assert.Zero(t, summary.TotalShareCapital)
		assert.Empty(t, summary.ShareClasses)
		assert.Empty(t, summary.Shareholders)
	})

	t.Run("HolderMissingFromDirectoryKeepsShares", func(t *testing.T) {
		// An entry can reference a holder absent from the summary inputs;
		// the shares still count, the name is just blank.
		ghost := uuid.New()
		entries := []*shareentry.Entry{entry(t, ghost, shared.ShareClassA, 1, 100, 1, 1)}

		summary := Compute(entries, nil)

		assert.Equal(t, int64(100), summary.TotalShares)
		require.Len(t, summary.Shareholders, 1)
		assert.Equal(t, ghost, summary.Shareholders[0].ShareholderID)
		assert.Empty(t, summary.Shareholders[0].Name)
	})

	t.Run("TieBreaksByName", func(t *testing.T) {
		anna := holder(t, "Anna")
		bodil := holder(t, "Bodil")

		entries := []*shareentry.Entry{
			entry(t, bodil.ID, shared.ShareClassA, 1, 500, 1, 1),
			entry(t, anna.ID, shared.ShareClassA, 501, 1000, 1, 1),
		}

		summary := Compute(entries, []*shareholder.Shareholder{anna, bodil})

		require.Len(t, summary.Shareholders, 2)
		assert.Equal(t, "Anna", summary.Shareholders[0].Name)
		assert.Equal(t, "Bodil", summary.Shareholders[1].Name)
	})

	t.Run("SplitPreservesOwnership", func(t *testing.T) {
		alice := holder(t, "Astrid Lindqvist")
		bob := holder(t, "Nordic Holdings AB")
		holders := []*shareholder.Shareholder{alice, bob}

		before := Compute([]*shareentry.Entry{
			entry(t, alice.ID, shared.ShareClassA, 1, 600, 2, 10),
			entry(t, bob.ID, shared.ShareClassA, 601, 1000, 2, 10),
		}, holders)

		// Same holdings after a 2:1 split: twice the shares at half the nominal
		after := Compute([]*shareentry.Entry{
			entry(t, alice.ID, shared.ShareClassA, 1, 1200, 1, 10),
			entry(t, bob.ID, shared.ShareClassA, 1201, 2000, 1, 10),
		}, holders)

		assert.Equal(t, before.TotalShares*2, after.TotalShares)
		assert.InDelta(t, before.TotalShareCapital, after.TotalShareCapital, 1e-9)
		require.Len(t, after.Shareholders, 2)
		for i := range before.Shareholders {
			assert.Equal(t, before.Shareholders[i].ShareholderID, after.Shareholders[i].ShareholderID)
			assert.InDelta(t, before.Shareholders[i].OwnershipPercentage, after.Shareholders[i].OwnershipPercentage, 1e-9)
			assert.InDelta(t, before.Shareholders[i].VotingPercentage, after.Shareholders[i].VotingPercentage, 1e-9)
		}
	})
}
