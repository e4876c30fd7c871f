package enums

import "fmt"

// GroupBuyStatus tracks the lifecycle of a group-buying campaign.
type GroupBuyStatus string

const (
	GroupBuyStatusActive    GroupBuyStatus = "active"
	GroupBuyStatusCompleted GroupBuyStatus = "completed"
	GroupBuyStatusCancelled GroupBuyStatus = "cancelled"
	GroupBuyStatusExpired   GroupBuyStatus = "expired"
)

var validGroupBuyStatuses = []GroupBuyStatus{
	GroupBuyStatusActive,
	GroupBuyStatusCompleted,
	GroupBuyStatusCancelled,
	GroupBuyStatusExpired,
}

// String implements fmt.Stringer.
func (g GroupBuyStatus) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GroupBuyStatus.
func (g GroupBuyStatus) IsValid() bool {
	for _, candidate := range validGroupBuyStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGroupBuyStatus converts raw input into a GroupBuyStatus.
func ParseGroupBuyStatus(value string) (GroupBuyStatus, error) {
	for _, candidate := range validGroupBuyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group buy status %q", value)
}
