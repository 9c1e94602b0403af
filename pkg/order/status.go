package order

import "fmt"

// Status is the lifecycle position of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProduction Status = "Production"
	StatusCompleted  Status = "Completed"
)

// Rank orders statuses along the lifecycle; unknown statuses rank -1.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusProduction:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is one of the three canonical values.
func (s Status) Valid() bool { return s.Rank() >= 0 }

// Next returns the only status s may advance to.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusProduction, true
	case StatusProduction:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Label is the localized name shown to users.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "确认中"
	case StatusProduction:
		return "生产中"
	case StatusCompleted:
		return "已完成"
	default:
		return string(s)
	}
}

// Color is the badge palette entry for s.
func (s Status) Color() string {
	switch s {
	case StatusPending:
		return "yellow"
	case StatusProduction:
		return "blue"
	case StatusCompleted:
		return "green"
	default:
		return "gray"
	}
}

// ParseStatus accepts a canonical value or its localized label.
func ParseStatus(raw string) (Status, error) {
	for _, s := range []Status{StatusPending, StatusProduction, StatusCompleted} {
		if raw == string(s) || raw == s.Label() {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}
