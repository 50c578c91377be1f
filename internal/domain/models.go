package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientAccount is a usage ledger entry keyed by an opaque access code.
type ClientAccount struct {
	AccessCode string    `db:"access_code"`
	UsageLimit int       `db:"usage_limit"`
	Used       int       `db:"used"`
	Active     bool      `db:"active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Remaining returns the number of audit runs left for the account.
func (a *ClientAccount) Remaining() int {
	if a.Used >= a.UsageLimit {
		return 0
	}
	return a.UsageLimit - a.Used
}

// AuditReport is the metadata row for an archived XLSX report.
type AuditReport struct {
	ID         uuid.UUID `db:"id"`
	AccessCode string    `db:"access_code"`
	FileName   string    `db:"file_name"`
	S3Bucket   string    `db:"s3_bucket"`
	S3Key      string    `db:"s3_key"`
	CreatedAt  time.Time `db:"created_at"`
}

// LeaseExtraction holds the recognized fields of a lease audit result.
// All fields are optional in the model output; defaulting happens at the
// presentation layer, not in the pipeline.
type LeaseExtraction struct {
	TenantName      string    `json:"tenant_name"`
	MonthlyRent     string    `json:"monthly_rent"`
	SecurityDeposit string    `json:"security_deposit"`
	RiskScore       RiskScore `json:"risk_score"`
	RiskFlags       RiskFlags `json:"risk_flags"`
}

// DecodeLeaseExtraction unmarshals a raw extraction object leniently:
// unrecognized fields are ignored, recognized fields keep their zero value
// when absent or malformed.
func DecodeLeaseExtraction(data json.RawMessage) *LeaseExtraction {
	var ex LeaseExtraction
	if len(data) > 0 {
		_ = json.Unmarshal(data, &ex)
	}
	return &ex
}

// RiskScore is an integer risk rating (0-10). Models occasionally emit it as
// a quoted string or a float; both decode to the integer value.
type RiskScore int

func (r *RiskScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*r = RiskScore(int(f))
	}
	return nil
}

// RiskFlags is the list of detected lease issues. The model returns it
// either as a single string or as an array of strings.
type RiskFlags []string

func (r *RiskFlags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil && single != "" {
		*r = []string{single}
	}
	return nil
}

// Summary flattens the flags to a comma-joined string for display and export.
func (r RiskFlags) Summary() string {
	return strings.Join(r, ", ")
}
