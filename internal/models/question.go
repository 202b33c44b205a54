package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type QuestionType string

const (
	QuestionText         QuestionType = "text"
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionNumber       QuestionType = "number"
	QuestionBoolean      QuestionType = "boolean"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionSingleChoice, QuestionMultiChoice, QuestionNumber, QuestionBoolean:
		return true
	}
	return false
}

// Question is a custom RSVP question. A question with a SessionID is only
// asked of guests attending that session.
type Question struct {
	ID           string       `db:"id" json:"id"`
	EventID      string       `db:"event_id" json:"eventId"`
	SessionID    string       `db:"event_session_id" json:"sessionId,omitempty"`
	Label        string       `db:"label" json:"label"`
	Description  string       `db:"description" json:"description,omitempty"`
	Type         QuestionType `db:"type" json:"type"`
	Required     bool         `db:"is_required" json:"required"`
	Options      StringList   `db:"options" json:"options,omitempty"`
	DisplayOrder int          `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
}

// StringList is a list of strings persisted as a JSON array column.
type StringList []string

// Value implements driver.Valuer. An empty list is stored as NULL.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("string list: unsupported column type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}
