package importer

import (
	"fmt"
	"strings"
)

// UserMessage is the operator-facing rendering of a technical error, with a
// stable code that can be quoted when reporting a failed import.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error substrings (matched case-insensitively)
// to user messages. The first matching pattern wins, so specific patterns
// come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this key already exists",
			Action:  "Review the skipped rows for duplicate values",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Check the CSV for repeated registration numbers, plates or codes",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Check the CSV for repeated registration numbers, plates or codes",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "A referenced record does not exist",
			Action:  "Ensure related records exist before importing",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "The database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The import timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The import was cancelled",
			Action:  "Start a new import when ready",
			Code:    "DB007",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The CSV file has no data rows",
			Action:  "Upload a file with at least one row after the header",
			Code:    "FILE001",
		},
	},
	{
		pattern: "header row is blank",
		msg: UserMessage{
			Message: "The CSV header row is blank",
			Action:  "Ensure the first row contains column names",
			Code:    "FILE002",
		},
	},
	{
		pattern: "open csv file",
		msg: UserMessage{
			Message: "The uploaded file could not be read",
			Action:  "Upload the file again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "unknown import type",
		msg: UserMessage{
			Message: "The requested import type is not supported",
			Action:  "Choose one of: soci, cadetti, mezzi, attrezzature",
			Code:    "IMP001",
		},
	},
}

// defaultMessage is the ERR000 fallback when no pattern matches. The
// server log carries the original technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message, falling back
// to ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders the mapped message as a single display string:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
