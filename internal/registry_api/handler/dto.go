package handler

// CreateShareholderRequest represents a request to register a shareholder
type CreateShareholderRequest struct {
	Name               string `json:"name" binding:"required"`
	Type               string `json:"type" binding:"required,oneof=individual company fund"`
	OrganizationNumber string `json:"organization_number,omitempty"`
	Email              string `json:"email,omitempty" binding:"omitempty,email"`
	Address            string `json:"address,omitempty"`
}

// UpdateShareholderRequest represents a partial update; nil fields are
// left unchanged
type UpdateShareholderRequest struct {
	Name               *string `json:"name,omitempty"`
	Type               *string `json:"type,omitempty" binding:"omitempty,oneof=individual company fund"`
	OrganizationNumber *string `json:"organization_number,omitempty"`
	Email              *string `json:"email,omitempty" binding:"omitempty,email"`
	Address            *string `json:"address,omitempty"`
}

// CreateTransactionRequest represents a request to record a ledger transaction
type CreateTransactionRequest struct {
	Type              string   `json:"type" binding:"required,oneof=founding new_issue transfer split redemption bonus_issue"`
	Date              string   `json:"date,omitempty"`
	FromShareholderID *string  `json:"from_shareholder_id,omitempty" binding:"omitempty,uuid"`
	ToShareholderID   *string  `json:"to_shareholder_id,omitempty" binding:"omitempty,uuid"`
	ShareClass        string   `json:"share_class" binding:"required"`
	NumberOfShares    int64    `json:"number_of_shares" binding:"required,gt=0"`
	ShareNumberFrom   int64    `json:"share_number_from,omitempty"`
	ShareNumberTo     int64    `json:"share_number_to,omitempty"`
	NominalValue      float64  `json:"nominal_value,omitempty"`
	VotesPerShare     int64    `json:"votes_per_share,omitempty" binding:"omitempty,min=0"`
	PricePerShare     *float64 `json:"price_per_share,omitempty"`
	TotalAmount       *float64 `json:"total_amount,omitempty"`
	Description       string   `json:"description,omitempty"`
}
