package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	valueNone valueKind = iota
	valueText
	valueNumber
)

// AnswerValue holds either a text or a numeric answer. The zero value is empty.
type AnswerValue struct {
	kind   valueKind
	text   string
	number float64
}

func TextValue(s string) AnswerValue { return AnswerValue{kind: valueText, text: s} }

func NumberValue(f float64) AnswerValue { return AnswerValue{kind: valueNumber, number: f} }

// ParseAnswerValue interprets raw as a number when it parses as a finite one,
// else as text.
func ParseAnswerValue(raw string) AnswerValue {
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && isFinite(f) {
		return NumberValue(f)
	}
	return TextValue(raw)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (v AnswerValue) IsEmpty() bool {
	return v.kind == valueNone || (v.kind == valueText && v.text == "")
}

// Number returns the numeric value; ok is false for text or empty values.
func (v AnswerValue) Number() (float64, bool) {
	return v.number, v.kind == valueNumber
}

// Text returns the text value; ok is false for numeric or empty values.
func (v AnswerValue) Text() (string, bool) {
	return v.text, v.kind == valueText
}

func (v AnswerValue) String() string {
	switch v.kind {
	case valueNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case valueText:
		return v.text
	default:
		return ""
	}
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueNumber:
		return json.Marshal(v.number)
	case valueText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = AnswerValue{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("answer value must be a string or number: %w", err)
		}
		if !isFinite(f) {
			return fmt.Errorf("answer value must be a finite number")
		}
		*v = NumberValue(f)
	}
	return nil
}

type Answer struct {
	QuestionID string      `json:"questionId"`
	Value      AnswerValue `json:"value"`
}
