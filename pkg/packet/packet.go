// Package packet implements the TYPE:<kind>|KEY:value|...|END payload
// convention carried by a carousel, plus the compress-and-mask helpers used
// to fit larger content into it.
package packet

import (
	"errors"
	"fmt"
	"strings"
)

const (
	typeKey    = "TYPE"
	terminator = "END"
	separator  = "|"
)

var ErrMalformed = errors.New("malformed packet")

// Common kinds.
const (
	KindText    = "TXT"
	KindWeb     = "WEB"
	KindImage   = "IMG"
	KindYouTube = "YT"
	KindError   = "ERR"
)

type Field struct {
	Key   string
	Value string
}

type Packet struct {
	Kind   string
	Fields []Field
}

func New(kind string, fields ...Field) Packet {
	return Packet{Kind: kind, Fields: fields}
}

// Get returns the first value stored under key.
func (p Packet) Get(key string) (string, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Encode renders the packet. Keys and values must not contain the field
// separator, and keys must not contain ':'.
func (p Packet) Encode() (string, error) {
	if p.Kind == "" || strings.Contains(p.Kind, separator) {
		return "", fmt.Errorf("%w: invalid kind %q", ErrMalformed, p.Kind)
	}

	var sb strings.Builder
	sb.WriteString(typeKey + ":" + p.Kind)
	for _, f := range p.Fields {
		if f.Key == "" || strings.ContainsAny(f.Key, separator+":") || strings.HasPrefix(f.Key, terminator) {
			return "", fmt.Errorf("%w: invalid key %q", ErrMalformed, f.Key)
		}
		if strings.Contains(f.Value, separator) {
			return "", fmt.Errorf("%w: value of %s contains %q", ErrMalformed, f.Key, separator)
		}
		sb.WriteString(separator + f.Key + ":" + f.Value)
	}
	sb.WriteString(separator + terminator)
	return sb.String(), nil
}

func (p Packet) String() string {
	s, err := p.Encode()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}

// Parse reads a packet back. Text outside a TYPE ... END pair, for example
// noise decoded before or after it, is ignored.
func Parse(s string) (Packet, error) {
	start := strings.Index(s, typeKey+":")
	if start < 0 {
		return Packet{}, fmt.Errorf("%w: missing %s header", ErrMalformed, typeKey)
	}
	body := s[start:]
	end := strings.Index(body, separator+terminator)
	if end < 0 {
		return Packet{}, fmt.Errorf("%w: missing %s terminator", ErrMalformed, terminator)
	}

	parts := strings.Split(body[:end], separator)
	p := Packet{Kind: strings.TrimPrefix(parts[0], typeKey+":")}
	if p.Kind == "" {
		return Packet{}, fmt.Errorf("%w: empty kind", ErrMalformed)
	}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, ":")
		if !ok || key == "" {
			return Packet{}, fmt.Errorf("%w: field %q", ErrMalformed, part)
		}
		p.Fields = append(p.Fields, Field{Key: key, Value: value})
	}
	return p, nil
}
