// Package errors provides structured error types for streamchat.
// Every error carries the operation that failed and a coarse category so the
// UI can decide between a flash banner and a log line.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindConfig
	KindCredentials
	KindBridge
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindCredentials:
		return "credentials error"
	case KindBridge:
		return "bridge error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for streamchat.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Credential errors
func CredentialsLoadFailed(path string, err error) error {
	return E(Op("credentials.Read"), KindCredentials, fmt.Sprintf("failed to read credentials from %s", path), err)
}

func CredentialsSaveFailed(path string, err error) error {
	return E(Op("credentials.Save"), KindCredentials, fmt.Sprintf("failed to save credentials to %s", path), err)
}

func CredentialMissing(name string) error {
	return E(Op("credentials.Require"), KindNotFound, fmt.Sprintf("%s is not set", name))
}

// Feed errors
func DuplicateEntry(id string) error {
	return E(Op("feed.Append"), KindInvalid, fmt.Sprintf("entry %s already in log", id))
}

// Bridge errors
func BridgeUnavailable(command string) error {
	return E(Op("bridge."+command), KindBridge, "bridge does not support this command")
}

func SendFailed(err error) error {
	return E(Op("bridge.SendChatMessage"), KindBridge, "failed to send chat message", err)
}

func ListenerStartFailed(name string, err error) error {
	return E(Op("bridge.Start"), KindBridge, fmt.Sprintf("failed to start %s", name), err)
}

// Network errors
func HelixRequestFailed(path string, status int) error {
	return E(Op("helix.Get"), KindNetwork, fmt.Sprintf("%s returned status %d", path, status))
}
