// Copyright (c) 2024 RoseLoverX

package tghelper

import (
	"fmt"
	"strings"
)

// Error is a typed configuration or dispatch failure. Two errors are
// equal under errors.Is when their codes match, so the exported values
// below act as sentinels for the whole family.
type Error struct {
	Message        string
	Description    string
	AdditionalInfo any // offending language code, handler index, etc.
}

var (
	ErrLocaleNotFound      = &Error{Message: "LOCALE_NOT_FOUND"}
	ErrDuplicateLocale     = &Error{Message: "LOCALE_DUPLICATE"}
	ErrLanguageCodeInvalid = &Error{Message: "LANGUAGE_CODE_INVALID"}
	ErrDefaultLocale       = &Error{Message: "DEFAULT_LOCALE_INVALID"}
	ErrNilHandler          = &Error{Message: "HANDLER_NIL"}
	ErrRegistrySealed      = &Error{Message: "REGISTRY_SEALED"}
	ErrHandlerPanic        = &Error{Message: "HANDLER_PANIC"}
	ErrSeparatorInvalid    = &Error{Message: "SEPARATOR_INVALID"}
)

var errorMessages = map[string]string{
	"LOCALE_NOT_FOUND":       "Language code '%v' was not found.",
	"LOCALE_DUPLICATE":       "Localization for language code '%v' already exists.",
	"LANGUAGE_CODE_INVALID":  "Language code can't be empty or white-spaces.",
	"DEFAULT_LOCALE_INVALID": "Default localization key '%v' is not registered.",
	"HANDLER_NIL":            "Handler callback for %v is nil.",
	"REGISTRY_SEALED":        "Handlers can't be registered after dispatching started (%v).",
	"HANDLER_PANIC":          "Handler panicked: %v",
	"SEPARATOR_INVALID":      "Separator %q can't be used to split callback data.",
}

// NewError builds an error of the given kind, formatting its description
// with the additional data when the description expects it.
func NewError(kind *Error, additionalData any) error {
	desc, ok := errorMessages[kind.Message]
	if !ok {
		desc = kind.Message
	}

	if strings.Contains(desc, "%") {
		desc = fmt.Sprintf(desc, additionalData)
	}

	return &Error{
		Message:        kind.Message,
		Description:    desc,
		AdditionalInfo: additionalData,
	}
}

func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("[%s]", e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Message, e.Description)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == e.Message
}
