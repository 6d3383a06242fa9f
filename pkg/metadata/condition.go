package metadata

import (
	"fmt"
	"strings"
)

type Condition string

const (
	ConditionGood Condition = "good"
	ConditionFair Condition = "fair"
	ConditionPoor Condition = "poor"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}

// NewCondition normalizes and validates a condition label. An empty value
// falls back to "good", matching what the checkout forms send by default.
func NewCondition(value string) (Condition, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ConditionGood, nil
	}
	condition := Condition(normalized)
	if !condition.IsValid() {
		return condition, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s",
			ConditionGood, ConditionFair, ConditionPoor,
		)
	}

	return condition, nil
}

func (c Condition) String() string {
	return string(c)
}
