package shared

// ShareClass identifies a category of shares with its own nominal value
// and voting weight
type ShareClass string

const (
	ShareClassCommon     ShareClass = "common"
	ShareClassA          ShareClass = "A"
	ShareClassB          ShareClass = "B"
	ShareClassC          ShareClass = "C"
	ShareClassPreference ShareClass = "preference"
)

// Valid reports whether the share class is one of the known classes
func (c ShareClass) Valid() bool {
	switch c {
	case ShareClassCommon, ShareClassA, ShareClassB, ShareClassC, ShareClassPreference:
		return true
	}
	return false
}

// ShareholderType defines the legal form of a shareholder
type ShareholderType string

const (
	ShareholderTypeIndividual ShareholderType = "individual"
	ShareholderTypeCompany    ShareholderType = "company"
	ShareholderTypeFund       ShareholderType = "fund"
)

// Valid reports whether the shareholder type is one of the known forms
func (t ShareholderType) Valid() bool {
	switch t {
	case ShareholderTypeIndividual, ShareholderTypeCompany, ShareholderTypeFund:
		return true
	}
	return false
}

// TransactionType defines the ledger events that can mutate share holdings
type TransactionType string

const (
	TransactionTypeFounding   TransactionType = "founding"
	TransactionTypeNewIssue   TransactionType = "new_issue"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeSplit      TransactionType = "split"
	TransactionTypeRedemption TransactionType = "redemption"
	TransactionTypeBonusIssue TransactionType = "bonus_issue"
)

// Valid reports whether the transaction type is one of the known ledger events
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeFounding, TransactionTypeNewIssue, TransactionTypeTransfer,
		TransactionTypeSplit, TransactionTypeRedemption, TransactionTypeBonusIssue:
		return true
	}
	return false
}

// RequiresSource reports whether the type carves shares out of an existing holding
func (t TransactionType) RequiresSource() bool {
	return t == TransactionTypeTransfer || t == TransactionTypeRedemption
}

// CreatesShares reports whether the type issues brand-new shares into a class
func (t TransactionType) CreatesShares() bool {
	return t == TransactionTypeFounding || t == TransactionTypeNewIssue || t == TransactionTypeBonusIssue
}

// OutboxStatus defines registry event publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
