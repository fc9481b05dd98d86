// Package frontier defines the sentinel errors of the priority frontier.
package frontier

import "errors"

var (
	// ErrEmptyFrontier indicates PopMin was called on an empty frontier.
	ErrEmptyFrontier = errors.New("frontier: frontier is empty")

	// ErrDuplicate indicates Push was called for an item already present.
	ErrDuplicate = errors.New("frontier: item already present")

	// ErrNotFound indicates DecreaseKey or Remove referenced an absent item.
	ErrNotFound = errors.New("frontier: item not present")

	// ErrPriorityIncrease indicates DecreaseKey was given a larger priority.
	ErrPriorityIncrease = errors.New("frontier: new priority exceeds current priority")
)
