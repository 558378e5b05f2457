package models

import "time"

/************************************************
/**** MARK: CONTRIBUTION KIND ****/
/************************************************/
const CONTRIBUTION_KIND_TITHE = "dizimo"
const CONTRIBUTION_KIND_OFFERING = "oferta"
const CONTRIBUTION_KIND_CAMPAIGN = "campanha"

// Contribution representa uma entrada financeira (dízimo, oferta, campanha).
type Contribution struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	BranchID    int64      `gorm:"not null;index" json:"branch_id" form:"branch_id"`
	MemberID    int64      `gorm:"not null;default:0;index" json:"member_id" form:"member_id"`
	Kind        string     `gorm:"not null;default:'oferta'" json:"kind" form:"kind"`
	AmountCents int64      `gorm:"not null" json:"amount_cents" form:"amount_cents"`
	Currency    string     `gorm:"not null;default:'BRL'" json:"currency" form:"currency"`
	ReceivedAt  *time.Time `gorm:"index" json:"received_at" form:"received_at"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
