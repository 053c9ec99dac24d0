package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is the dashboard-side anomaly classification. The empty value
// means the session carries no anomaly.
type Category string

const (
	CategoryNone      Category = ""
	CategoryFraud     Category = "fraud"
	CategoryDoS       Category = "dos"
	CategoryMultiUser Category = "multiuser"
)

func (c Category) Validate() error {
	switch c {
	case CategoryNone, CategoryFraud, CategoryDoS, CategoryMultiUser:
		return nil
	default:
		return fmt.Errorf("unsupported anomaly category %q", string(c))
	}
}

// Label is the human form shown in tables and badges.
func (c Category) Label() string {
	switch c {
	case CategoryFraud:
		return "Bill Fraud"
	case CategoryDoS:
		return "DoS Attack"
	case CategoryMultiUser:
		return "Multi-User"
	default:
		return ""
	}
}

// Status is the severity bucket driving visual treatment and the operator
// actions available on a session.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

func (s Status) Validate() error {
	switch s {
	case StatusNormal, StatusWarning, StatusCritical:
		return nil
	default:
		return fmt.Errorf("unsupported status %q", string(s))
	}
}

// Backend anomaly tags as they appear on the wire.
const (
	TagBillingFraud      = "billing_fraud"
	TagDoSAttack         = "dos_attack"
	TagMultiUserConflict = "multi_user_conflict"
)

// Classify maps a backend anomaly tag to the dashboard category, severity
// bucket, and fixed risk score. Unrecognized tags classify as clean; the
// backend only ever reports sessions it considers anomalous, but the mapping
// must not invent severity for tags it does not know.
func Classify(tag string) (Category, Status, float64) {
	switch tag {
	case TagBillingFraud:
		return CategoryFraud, StatusCritical, 0.95
	case TagDoSAttack:
		return CategoryDoS, StatusCritical, 0.92
	case TagMultiUserConflict:
		return CategoryMultiUser, StatusWarning, 0.75
	default:
		return CategoryNone, StatusNormal, 0
	}
}

// Session is one recorded EV charging transaction under monitoring. It is
// created only by the transformer and mutated only through Board reducers.
type Session struct {
	SessionID   string
	ChargerID   string
	UserID      string
	StartedAt   time.Time
	StartClock  string
	DurationMin float64
	EnergyKWh   float64
	Score       float64
	Category    Category
	Status      Status
	Payment     *float64
	IPAddress   string
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if err := s.Category.Validate(); err != nil {
		return err
	}
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if s.DurationMin < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	if s.EnergyKWh < 0 {
		return fmt.Errorf("energy must be non-negative")
	}
	if s.Score < 0 || s.Score > 1 {
		return fmt.Errorf("score must be within [0,1]")
	}
	return nil
}

// Anomalous reports whether the session carries any anomaly category.
func (s Session) Anomalous() bool {
	return s.Category != CategoryNone
}
