package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConsumed is returned when an operation targets a tree or chain that was
// already moved into another structure.
var ErrConsumed = errors.New("tree or chain has been consumed")

// BuildError reports an invalid builder state, such as an empty name.
type BuildError struct {
	Name   string // Offending identifier
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %q: %s", e.Name, e.Reason)
}

// TypeConversionError reports a construction argument of the wrong shape.
type TypeConversionError struct {
	Argument string
	Expected string
	Value    any
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("argument %q: cannot convert %T to %s", e.Argument, e.Value, e.Expected)
}

// UnknownArgumentError reports a construction argument that is not recognised.
type UnknownArgumentError struct {
	Argument string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unexpected argument %q", e.Argument)
}

// AddLinkError reports a link name collision (or a consumed source) during attach.
type AddLinkError struct {
	Name string
	Err  error
}

func (e *AddLinkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("add link %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("add link %q: name already in use", e.Name)
}

func (e *AddLinkError) Unwrap() error { return e.Err }

// AddJointError reports a joint name collision (or a consumed source) during attach.
type AddJointError struct {
	Name string
	Err  error
}

func (e *AddJointError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("add joint %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("add joint %q: name already in use", e.Name)
}

func (e *AddJointError) Unwrap() error { return e.Err }

// AddMaterialError reports two different materials sharing one name.
type AddMaterialError struct {
	Name string
}

func (e *AddMaterialError) Error() string {
	return fmt.Sprintf("add material %q: a different material with this name already exists", e.Name)
}

// AddTransmissionError reports an unnamed or duplicated transmission.
type AddTransmissionError struct {
	Name   string
	Reason string
}

func (e *AddTransmissionError) Error() string {
	return fmt.Sprintf("add transmission %q: %s", e.Name, e.Reason)
}

// AttachChainError lists every name of a chain that collides with the target tree.
type AttachChainError struct {
	Links  []string
	Joints []string
	Err    error
}

func (e *AttachChainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attach chain: %v", e.Err)
	}
	var parts []string
	if len(e.Links) > 0 {
		parts = append(parts, fmt.Sprintf("links [%s]", strings.Join(e.Links, ", ")))
	}
	if len(e.Joints) > 0 {
		parts = append(parts, fmt.Sprintf("joints [%s]", strings.Join(e.Joints, ", ")))
	}
	return "attach chain: colliding " + strings.Join(parts, " and ")
}

func (e *AttachChainError) Unwrap() error { return e.Err }

// RebuildBranchError is returned when a joint handle no longer belongs to a live tree.
type RebuildBranchError struct {
	Joint string
	Err   error
}

func (e *RebuildBranchError) Error() string {
	return fmt.Sprintf("rebuild branch at %q: %v", e.Joint, e.Err)
}

func (e *RebuildBranchError) Unwrap() error { return e.Err }

// YankError reports a link or joint that cannot be cut out of a tree.
type YankError struct {
	Element string // "link" or "joint"
	Name    string
	Reason  string
	Err     error
}

func (e *YankError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("yank %s %q: %v", e.Element, e.Name, e.Err)
	}
	return fmt.Sprintf("yank %s %q: %s", e.Element, e.Name, e.Reason)
}

func (e *YankError) Unwrap() error { return e.Err }

// GroupIDErrorKind classifies a GroupIDError.
type GroupIDErrorKind int

const (
	GroupIDContainsOpen GroupIDErrorKind = iota
	GroupIDContainsClose
	GroupIDEmpty
	GroupIDCollision
)

// GroupIDError reports an invalid group id or a collision caused by applying one.
type GroupIDError struct {
	GroupID string
	Kind    GroupIDErrorKind
	Names   []string // Colliding names, for GroupIDCollision
}

func (e *GroupIDError) Error() string {
	switch e.Kind {
	case GroupIDContainsOpen:
		return fmt.Sprintf("invalid opening delimiter (%q) found in group id %q", DelimiterOpen, e.GroupID)
	case GroupIDContainsClose:
		return fmt.Sprintf("invalid closing delimiter (%q) found in group id %q", DelimiterClose, e.GroupID)
	case GroupIDEmpty:
		return "cannot change group id to empty string"
	default:
		if e.GroupID != "" {
			return fmt.Sprintf("changing group id to %q collides on [%s]", e.GroupID, strings.Join(e.Names, ", "))
		}
		return fmt.Sprintf("applying group ids collides on [%s]", strings.Join(e.Names, ", "))
	}
}

// XMLError reports a structural inconsistency found while emitting a document.
type XMLError struct {
	Element string
	Reason  string
}

func (e *XMLError) Error() string {
	return fmt.Sprintf("xml %s: %s", e.Element, e.Reason)
}

// AggregateError represents multiple failures found in one pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }
