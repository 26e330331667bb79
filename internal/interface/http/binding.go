package handlers

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// epochMillis accepts a JSON number or numeric string. Anything else is zero,
// which turns the submit-timing check off.
type epochMillis int64

func (m *epochMillis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		*m = 0
		return nil
	}
	*m = epochMillis(f)
	return nil
}

// stringList accepts either a JSON array of strings or one comma-joined string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var arr []string
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		*l = cleanList(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = splitComma(s)
	return nil
}

// splitComma parses the comma-joined form fields the mobile clients send.
func splitComma(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// formList merges repeated form values and comma-joined ones.
func formList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, splitComma(v)...)
	}
	if out == nil {
		return []string{}
	}
	return out
}

// flexInt accepts a JSON number or a numeric string, as range inputs send either.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(0)}
	}
	*n = flexInt(f)
	return nil
}
