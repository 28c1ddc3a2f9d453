package models

import "strings"

// Playbook horizons, in tab order.
const (
	HorizonImmediate = "immediate"
	HorizonShortTerm = "short-term"
	HorizonLongTerm  = "long-term"
)

// Action statuses.
const (
	ActionPending   = "pending"
	ActionCompleted = "completed"
)

// PlaybookAction is one recommended defensive step.
// Impact and Effort are High, Medium or Low.
type PlaybookAction struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Horizon     string `json:"horizon"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
	Status      string `json:"status"`
}

func (a PlaybookAction) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("playbook_action", "title", "required")
	}
	switch a.Horizon {
	case HorizonImmediate, HorizonShortTerm, HorizonLongTerm:
	default:
		return invalid("playbook_action", "horizon", "unknown horizon "+a.Horizon)
	}
	switch a.Status {
	case "", ActionPending, ActionCompleted:
	default:
		return invalid("playbook_action", "status", "unknown status "+a.Status)
	}
	return nil
}

// Completed reports whether the action has been carried out.
func (a PlaybookAction) Completed() bool { return a.Status == ActionCompleted }

// Playbook is a defense plan made of actions across horizons.
type Playbook struct {
	ID          ID               `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Actions     []PlaybookAction `json:"actions"`
	CreatedAt   Timestamp        `json:"created_at"`
}

func (p Playbook) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("playbook", "title", "required")
	}
	return ValidateAll(p.Actions)
}

// ActionsFor returns the actions in the given horizon, preserving order.
func (p Playbook) ActionsFor(horizon string) []PlaybookAction {
	var out []PlaybookAction
	for _, a := range p.Actions {
		if a.Horizon == horizon {
			out = append(out, a)
		}
	}
	return out
}
