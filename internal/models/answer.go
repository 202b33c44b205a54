package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAnswer is returned when raw input cannot be decoded for the
// question's declared type.
var ErrInvalidAnswer = errors.New("invalid answer")

// AnswerValue holds exactly one kind of answer, selected by Type. Only the
// field matching Type is meaningful.
type AnswerValue struct {
	Type    QuestionType
	Text    string   // QuestionText
	Choice  string   // QuestionSingleChoice
	Choices []string // QuestionMultiChoice
	Number  *float64 // QuestionNumber
	Bool    *bool    // QuestionBoolean
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Type: QuestionText, Text: s}
}

func ChoiceAnswer(s string) AnswerValue {
	return AnswerValue{Type: QuestionSingleChoice, Choice: s}
}

func ChoicesAnswer(choices ...string) AnswerValue {
	return AnswerValue{Type: QuestionMultiChoice, Choices: choices}
}

func NumberAnswer(f float64) AnswerValue {
	return AnswerValue{Type: QuestionNumber, Number: &f}
}

func BoolAnswer(b bool) AnswerValue {
	return AnswerValue{Type: QuestionBoolean, Bool: &b}
}

// IsEmpty reports whether the value carries no answer.
func (v AnswerValue) IsEmpty() bool {
	switch v.Type {
	case QuestionText:
		return strings.TrimSpace(v.Text) == ""
	case QuestionSingleChoice:
		return v.Choice == ""
	case QuestionMultiChoice:
		return len(v.Choices) == 0
	case QuestionNumber:
		return v.Number == nil
	case QuestionBoolean:
		return v.Bool == nil
	}
	return true
}

// String renders the value for display.
func (v AnswerValue) String() string {
	switch v.Type {
	case QuestionText:
		return v.Text
	case QuestionSingleChoice:
		return v.Choice
	case QuestionMultiChoice:
		return strings.Join(v.Choices, ", ")
	case QuestionNumber:
		if v.Number != nil {
			return strconv.FormatFloat(*v.Number, 'f', -1, 64)
		}
	case QuestionBoolean:
		if v.Bool != nil {
			if *v.Bool {
				return "Yes"
			}
			return "No"
		}
	}
	return ""
}

// ParseAnswer decodes form input for q. Blank input yields an empty value,
// not an error.
func ParseAnswer(q Question, raw []string) (AnswerValue, error) {
	values := make([]string, 0, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			values = append(values, r)
		}
	}

	v := AnswerValue{Type: q.Type}
	if len(values) == 0 {
		if !q.Type.Valid() {
			return AnswerValue{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, q.Type)
		}
		return v, nil
	}

	switch q.Type {
	case QuestionText:
		v.Text = values[0]
	case QuestionSingleChoice:
		v.Choice = values[0]
	case QuestionMultiChoice:
		v.Choices = values
	case QuestionNumber:
		f, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return AnswerValue{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAnswer, values[0])
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return AnswerValue{}, fmt.Errorf("%w: %q is not a finite number", ErrInvalidAnswer, values[0])
		}
		v.Number = &f
	case QuestionBoolean:
		b, err := parseBool(values[0])
		if err != nil {
			return AnswerValue{}, err
		}
		v.Bool = &b
	default:
		return AnswerValue{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, q.Type)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not yes or no", ErrInvalidAnswer, s)
	}
	return b, nil
}

// Encode splits the value into its storage columns. Text and single choice
// answers are stored as plain text; the other kinds as JSON. Exactly one of
// the results is non-nil for a non-empty value.
func (v AnswerValue) Encode() (text *string, structured []byte, err error) {
	if v.IsEmpty() {
		return nil, nil, nil
	}
	switch v.Type {
	case QuestionText:
		s := v.Text
		return &s, nil, nil
	case QuestionSingleChoice:
		s := v.Choice
		return &s, nil, nil
	case QuestionMultiChoice:
		structured, err = json.Marshal(v.Choices)
	case QuestionNumber:
		structured, err = json.Marshal(*v.Number)
	case QuestionBoolean:
		structured, err = json.Marshal(*v.Bool)
	default:
		return nil, nil, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, v.Type)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s answer: %w", v.Type, err)
	}
	return nil, structured, nil
}

// DecodeAnswer rebuilds a value from its storage columns.
func DecodeAnswer(t QuestionType, text *string, structured []byte) (AnswerValue, error) {
	v := AnswerValue{Type: t}
	switch t {
	case QuestionText:
		if text != nil {
			v.Text = *text
		}
		return v, nil
	case QuestionSingleChoice:
		if text != nil {
			v.Choice = *text
		}
		return v, nil
	}

	if len(structured) == 0 {
		if !t.Valid() {
			return AnswerValue{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, t)
		}
		return v, nil
	}

	var err error
	switch t {
	case QuestionMultiChoice:
		err = json.Unmarshal(structured, &v.Choices)
	case QuestionNumber:
		var f float64
		if err = json.Unmarshal(structured, &f); err == nil {
			v.Number = &f
		}
	case QuestionBoolean:
		var b bool
		if err = json.Unmarshal(structured, &b); err == nil {
			v.Bool = &b
		}
	default:
		return AnswerValue{}, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, t)
	}
	if err != nil {
		return AnswerValue{}, fmt.Errorf("decode %s answer: %w", t, err)
	}
	return v, nil
}

// MarshalJSON writes the value as {"type": ..., "value": ...}.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	out := struct {
		Type  QuestionType `json:"type"`
		Value any          `json:"value"`
	}{Type: v.Type}
	switch v.Type {
	case QuestionText:
		out.Value = v.Text
	case QuestionSingleChoice:
		out.Value = v.Choice
	case QuestionMultiChoice:
		out.Value = v.Choices
	case QuestionNumber:
		out.Value = v.Number
	case QuestionBoolean:
		out.Value = v.Bool
	}
	return json.Marshal(out)
}
