// Package payload defines the status-bar line a module emits
package payload

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// Payload is one rendered status update. Text is always serialized, even
// when empty, since {"text": ""} is how a module asks to be blanked.
type Payload struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// Empty is the blank payload
func Empty() Payload {
	return Payload{}
}

// Marshal encodes p as a single JSON line without the trailing newline.
// HTML escaping is off so pango markup survives untouched.
func (p Payload) Marshal() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Write encodes p followed by a newline
func (p Payload) Write(w io.Writer) error {
	line, err := p.Marshal()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, line+"\n")
	return err
}
