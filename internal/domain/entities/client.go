package entities

import (
	"fmt"
	"strings"
	"time"
)

// ClientActivity is the canonical form of the upstream "is_active" flag, which
// arrives as a boolean, as the strings "True"/"False", or not at all.
type ClientActivity string

const (
	ClientActivityUnknown  ClientActivity = "UNKNOWN"
	ClientActivityActive   ClientActivity = "ACTIVE"
	ClientActivityInactive ClientActivity = "INACTIVE"
)

// ParseActivity normalizes the upstream flag. nil and empty strings map to
// ClientActivityUnknown.
func ParseActivity(v any) (ClientActivity, error) {
	switch t := v.(type) {
	case nil:
		return ClientActivityUnknown, nil
	case bool:
		if t {
			return ClientActivityActive, nil
		}
		return ClientActivityInactive, nil
	case *bool:
		if t == nil {
			return ClientActivityUnknown, nil
		}
		return ParseActivity(*t)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "":
			return ClientActivityUnknown, nil
		case "true", "1", "yes", "active":
			return ClientActivityActive, nil
		case "false", "0", "no", "inactive":
			return ClientActivityInactive, nil
		}
	case ClientActivity:
		if t == ClientActivityActive || t == ClientActivityInactive || t == ClientActivityUnknown {
			return t, nil
		}
	}
	return ClientActivityUnknown, fmt.Errorf("unrecognized client activity %v", v)
}

// Client is the counterparty of quotes and invoices.
type Client struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Activity  ClientActivity `json:"activity"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsActive is true only for an explicitly active client.
func (c Client) IsActive() bool {
	return c.Activity == ClientActivityActive
}
