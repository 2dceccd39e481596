package sharetx

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
)

// MaxSplitRatio bounds the multiplier of a share split so that renumbering
// the class (count * ratio share numbers) stays far inside int64.
const MaxSplitRatio = 1_000_000

// Common errors
var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidShareCount      = errors.New("number of shares must be positive")
	ErrInvalidShareRange      = errors.New("share number range does not match number of shares")
	ErrMissingRecipient       = errors.New("transaction requires a receiving shareholder")
	ErrMissingSource          = errors.New("transfer and redemption require a source shareholder")
	ErrInvalidSplitRatio      = errors.New("split ratio must be 2 or greater")
	ErrSplitRatioTooLarge     = errors.New("split ratio exceeds the supported maximum")
	ErrImmutableLedger        = errors.New("share transactions cannot be modified or deleted")
)

// Transaction is one event in the share ledger. Once created it is never
// edited or removed; corrections are modeled as new offsetting transactions.
type Transaction struct {
	ID                uuid.UUID              `json:"id"`
	TenantID          string                 `json:"tenant_id"`
	Type              shared.TransactionType `json:"type"`
	Date              time.Time              `json:"date"`
	FromShareholderID *uuid.UUID             `json:"from_shareholder_id,omitempty"`
	ToShareholderID   *uuid.UUID             `json:"to_shareholder_id,omitempty"`
	ShareClass        shared.ShareClass      `json:"share_class"`
	NumberOfShares    int64                  `json:"number_of_shares"` // For a split: the ratio
	ShareNumberFrom   int64                  `json:"share_number_from"`
	ShareNumberTo     int64                  `json:"share_number_to"`
	NominalValue      float64                `json:"nominal_value"`
	VotesPerShare     int64                  `json:"votes_per_share"`
	PricePerShare     *float64               `json:"price_per_share,omitempty"`
	TotalAmount       *float64               `json:"total_amount,omitempty"`
	Description       string                 `json:"description,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

// Validate checks the submitted transaction's shape before orchestration.
// Balance, overlap and voting-weight checks need the current holdings and
// happen inside the ledger commit.
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if !t.ShareClass.Valid() {
		return errors.New("invalid share class")
	}
	if t.NumberOfShares <= 0 {
		return ErrInvalidShareCount
	}

	if t.Type == shared.TransactionTypeSplit {
		if t.NumberOfShares < 2 {
			return ErrInvalidSplitRatio
		}
		if t.NumberOfShares > MaxSplitRatio {
			return ErrSplitRatioTooLarge
		}
		// Share numbers are assigned during renumbering; no range to check.
		return nil
	}

	if t.ShareNumberFrom < 1 || t.ShareNumberTo < t.ShareNumberFrom {
		return ErrInvalidShareRange
	}
	if t.ShareNumberTo-t.ShareNumberFrom+1 != t.NumberOfShares {
		return ErrInvalidShareRange
	}

	if t.Type != shared.TransactionTypeRedemption && t.ToShareholderID == nil {
		return ErrMissingRecipient
	}
	if t.Type.RequiresSource() && t.FromShareholderID == nil {
		return ErrMissingSource
	}

	return nil
}
