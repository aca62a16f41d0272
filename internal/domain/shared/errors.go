package shared

import (
	"fmt"
	"strings"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Build-related errors

type BuildError struct {
	*DomainError
}

func NewBuildError(message string) *BuildError {
	return &BuildError{DomainError: &DomainError{Message: message}}
}

// InvalidComponentForSlotError is returned when a component cannot be fitted
// to a slot (wrong role, not in the slot's legal subset, or an empty value for
// a mandatory slot). The build is left unchanged.
type InvalidComponentForSlotError struct {
	*BuildError
	Slot        string
	ComponentID string
}

func NewInvalidComponentForSlotError(slot, componentID, reason string) *InvalidComponentForSlotError {
	return &InvalidComponentForSlotError{
		BuildError:  NewBuildError(fmt.Sprintf("component %q is not valid for slot %s: %s", componentID, slot, reason)),
		Slot:        slot,
		ComponentID: componentID,
	}
}

// ClassOutOfRangeError is returned when a component's class exceeds the
// ceiling of the slot it is assigned to.
type ClassOutOfRangeError struct {
	*BuildError
	Slot           string
	ComponentID    string
	ComponentClass int
	SlotClass      int
}

func NewClassOutOfRangeError(slot, componentID string, componentClass, slotClass int) *ClassOutOfRangeError {
	return &ClassOutOfRangeError{
		BuildError: NewBuildError(fmt.Sprintf("component %q has class %d, slot %s accepts at most class %d",
			componentID, componentClass, slot, slotClass)),
		Slot:           slot,
		ComponentID:    componentID,
		ComponentClass: componentClass,
		SlotClass:      slotClass,
	}
}

// UnknownComponentReferenceError is returned by decoding when a component id
// does not exist in the current catalog.
type UnknownComponentReferenceError struct {
	*BuildError
	Slot        string
	ComponentID string
}

func NewUnknownComponentReferenceError(slot, componentID string) *UnknownComponentReferenceError {
	return &UnknownComponentReferenceError{
		BuildError:  NewBuildError(fmt.Sprintf("unknown component reference %q in slot %s", componentID, slot)),
		Slot:        slot,
		ComponentID: componentID,
	}
}

type InvalidModificationError struct {
	*BuildError
	Slot           string
	ModificationID string
}

func NewInvalidModificationError(slot, modificationID, reason string) *InvalidModificationError {
	return &InvalidModificationError{
		BuildError:     NewBuildError(fmt.Sprintf("modification %q on slot %s: %s", modificationID, slot, reason)),
		Slot:           slot,
		ModificationID: modificationID,
	}
}

type UnknownShipError struct {
	*BuildError
	ShipID string
}

func NewUnknownShipError(shipID string) *UnknownShipError {
	return &UnknownShipError{
		BuildError: NewBuildError(fmt.Sprintf("unknown ship %q", shipID)),
		ShipID:     shipID,
	}
}

// Codec errors

type MalformedCodeError struct {
	*DomainError
	Code string
}

func NewMalformedCodeError(code, reason string) *MalformedCodeError {
	return &MalformedCodeError{
		DomainError: &DomainError{Message: fmt.Sprintf("malformed build code: %s", reason)},
		Code:        code,
	}
}

// CodeMismatchError is returned when a loadout document's code disagrees with
// the code recomputed from its own slot listing.
type CodeMismatchError struct {
	*DomainError
	DocumentCode   string
	RecomputedCode string
}

func NewCodeMismatchError(documentCode, recomputedCode string) *CodeMismatchError {
	return &CodeMismatchError{
		DomainError:    &DomainError{Message: fmt.Sprintf("document code %q does not match slot listing (%q)", documentCode, recomputedCode)},
		DocumentCode:   documentCode,
		RecomputedCode: recomputedCode,
	}
}

type SchemaValidationError struct {
	*DomainError
	Schema     string
	Violations []string
}

func NewSchemaValidationError(schema string, violations []string) *SchemaValidationError {
	return &SchemaValidationError{
		DomainError: &DomainError{Message: fmt.Sprintf("document does not validate against %s:\n  %s",
			schema, strings.Join(violations, "\n  "))},
		Schema:     schema,
		Violations: violations,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
