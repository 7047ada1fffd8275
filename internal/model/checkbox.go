package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Checkbox is a boolean submitted either as JSON true/false or as an HTML
// checkbox, where the browser sends "on" when ticked and nothing otherwise.
type Checkbox bool

// UnmarshalJSON accepts booleans and the strings "on", "true", "off", "false" and "".
func (c *Checkbox) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*c = Checkbox(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("checkbox: expected boolean or string, got %s", b)
	}
	return c.UnmarshalParam(s)
}

// UnmarshalParam decodes a form value. gin calls it while binding form bodies.
func (c *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "true", "1", "yes":
		*c = true
	case "", "off", "false", "0", "no":
		*c = false
	default:
		return fmt.Errorf("checkbox: unrecognized value %q", param)
	}
	return nil
}
