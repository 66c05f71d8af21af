package internal

import "fmt"

// StorageError represents errors reading or writing the key-value store
type StorageError struct {
	Key string
	Op  string // "open", "get", "set", "remove"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MessageKey returns the translation key for this error
func (e *StorageError) MessageKey() string {
	return "errors.storage"
}

// MessageParams returns the translation parameters for this error
func (e *StorageError) MessageParams() map[string]any {
	return map[string]any{"key": e.Key, "op": e.Op}
}

// ParseError represents stored or imported data that is not valid JSON
type ParseError struct {
	Source string // "storage", "import"
	Key    string // storage key or field name
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MessageKey returns the translation key for this error
func (e *ParseError) MessageKey() string {
	if e.Source == "import" {
		return "errors.importParse"
	}
	return "errors.parse"
}

// MessageParams returns the translation parameters for this error
func (e *ParseError) MessageParams() map[string]any {
	return map[string]any{"key": e.Key}
}

// CapacityError is returned when the routine limit would be exceeded.
// Incoming is zero for a single save.
type CapacityError struct {
	Limit    int
	Existing int
	Incoming int
}

func (e *CapacityError) Error() string {
	if e.Incoming > 0 {
		return fmt.Sprintf("routine limit of %d exceeded: you have %d and want to import %d", e.Limit, e.Existing, e.Incoming)
	}
	return fmt.Sprintf("routine limit of %d reached: delete a routine to add another", e.Limit)
}

// MessageKey returns the translation key for this error
func (e *CapacityError) MessageKey() string {
	if e.Incoming > 0 {
		return "errors.importCapacity"
	}
	return "errors.capacity"
}

// MessageParams returns the translation parameters for this error
func (e *CapacityError) MessageParams() map[string]any {
	return map[string]any{"limit": e.Limit, "existing": e.Existing, "incoming": e.Incoming}
}

// NotFoundError is returned when a lookup by id misses
type NotFoundError struct {
	Kind string // "routine"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// MessageKey returns the translation key for this error
func (e *NotFoundError) MessageKey() string {
	return "errors.notFound"
}

// MessageParams returns the translation parameters for this error
func (e *NotFoundError) MessageParams() map[string]any {
	return map[string]any{"id": e.ID}
}

// FormatError is returned when an import document has the wrong shape
type FormatError struct {
	Field  string
	Reason string
	// Entry is the 1-based position of the offending element, 0 when the
	// whole field is wrong
	Entry int
}

func (e *FormatError) Error() string {
	if e.Entry > 0 {
		return fmt.Sprintf("invalid data format: %s entry %d %s", e.Field, e.Entry, e.Reason)
	}
	return fmt.Sprintf("invalid data format: %s %s", e.Field, e.Reason)
}

// MessageKey returns the translation key for this error
func (e *FormatError) MessageKey() string {
	if e.Entry > 0 {
		return "errors.formatEntry"
	}
	return "errors.format"
}

// MessageParams returns the translation parameters for this error
func (e *FormatError) MessageParams() map[string]any {
	return map[string]any{"field": e.Field, "entry": e.Entry}
}

// ExportError represents errors writing an export file
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// MessageKey returns the translation key for this error
func (e *ExportError) MessageKey() string {
	return "errors.export"
}

// MessageParams returns the translation parameters for this error
func (e *ExportError) MessageParams() map[string]any {
	return map[string]any{"path": e.Path}
}

// Localizable is implemented by errors that carry a translation key
type Localizable interface {
	error
	MessageKey() string
	MessageParams() map[string]any
}
