package domain

import "time"

type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailed  AuditStatus = "failed"
)

const (
	AuditActionPinValidate = "pin.validate"
	AuditActionTokenRedeem = "token.redeem"
	AuditActionDirectEntry = "card.direct_entry"
)

type AuditLog struct {
	ID        string
	Action    string
	Status    AuditStatus
	CompanyID string
	CardID    string
	TokenID   string
	Reason    string
	IPAddress string
	CreatedAt time.Time
}
