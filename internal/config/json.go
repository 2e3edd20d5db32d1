package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/calebw/forecfg/internal/quarter"
)

// variableJSON is the wire shadow of VariableSpec. Pointer fields detect
// missing keys, which the plain struct cannot.
type variableJSON struct {
	Category *string         `json:"category"`
	Method   *string         `json:"method"`
	Input    json.RawMessage `json:"input"`
	Quarters *string         `json:"quarters"`
}

// UnmarshalJSON decodes an ordered configuration document.
//
// The top level must be a JSON object. Key order is preserved. All numbers
// are decoded as json.Number so their literal representation survives.
// Variable and category names are NFC-normalized so Unicode representation
// drift never splits a key.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode configuration: top level must be an object, got %v", tok)
	}

	names := []string{}
	vars := make(map[string]*VariableSpec)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode configuration: %w", err)
		}
		name := norm.NFC.String(keyTok.(string))

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode variable %q: %w", name, err)
		}
		spec, err := decodeVariable(raw)
		if err != nil {
			return fmt.Errorf("decode variable %q: %w", name, err)
		}
		if _, dup := vars[name]; dup {
			return fmt.Errorf("decode variable %q: duplicate key", name)
		}
		names = append(names, name)
		vars[name] = spec
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return fmt.Errorf("decode configuration: %w", err)
	}

	c.names = names
	c.vars = vars
	return nil
}

func decodeVariable(raw json.RawMessage) (*VariableSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var vj variableJSON
	if err := dec.Decode(&vj); err != nil {
		return nil, err
	}
	if vj.Category == nil {
		return nil, fmt.Errorf("missing category")
	}
	if vj.Method == nil {
		return nil, fmt.Errorf("missing method")
	}
	if len(vj.Input) == 0 {
		return nil, fmt.Errorf("missing input")
	}

	input, err := decodeInput(vj.Input)
	if err != nil {
		return nil, err
	}

	spec := &VariableSpec{
		Category: norm.NFC.String(*vj.Category),
		Method:   Method(*vj.Method),
		Input:    input,
	}
	if vj.Quarters != nil {
		r, err := quarter.ParseRange(*vj.Quarters)
		if err != nil {
			return nil, err
		}
		spec.Quarters = &r
	}
	return spec, nil
}

func decodeInput(raw json.RawMessage) (Input, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("missing input")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var seq []json.Number
		if err := dec.Decode(&seq); err != nil {
			return nil, fmt.Errorf("input sequence: %w", err)
		}
		return Sequence(seq), nil
	}
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("input scalar: %w", err)
	}
	return Scalar(n), nil
}

// MarshalJSON encodes the configuration with keys in document order.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := c.vars[name].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode variable %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the spec with a fixed field order:
// category, method, input, quarters.
func (v *VariableSpec) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"category":`)
	cat, err := json.Marshal(v.Category)
	if err != nil {
		return nil, err
	}
	buf.Write(cat)

	buf.WriteString(`,"method":`)
	method, err := json.Marshal(string(v.Method))
	if err != nil {
		return nil, err
	}
	buf.Write(method)

	buf.WriteString(`,"input":`)
	input, err := encodeInput(v.Input)
	if err != nil {
		return nil, err
	}
	buf.Write(input)

	buf.WriteString(`,"quarters":`)
	if v.Quarters == nil {
		buf.WriteString("null")
	} else {
		q, err := json.Marshal(v.Quarters.String())
		if err != nil {
			return nil, err
		}
		buf.Write(q)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeInput(input Input) ([]byte, error) {
	switch in := input.(type) {
	case Scalar:
		return numberBytes(json.Number(in))
	case Sequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, n := range in {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := numberBytes(n)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case nil:
		return nil, fmt.Errorf("missing input")
	default:
		return nil, fmt.Errorf("unsupported input type %T", input)
	}
}

// numberBytes emits the number's literal text after checking it is valid
// JSON. Emitting the literal, not a re-formatted value, is what keeps "0"
// and "0.0" distinct across round trips.
func numberBytes(n json.Number) ([]byte, error) {
	if !json.Valid([]byte(n)) {
		return nil, fmt.Errorf("invalid number literal %q", string(n))
	}
	return []byte(n), nil
}

// Encode writes the configuration to w as two-space-indented JSON with a
// trailing newline. This is the on-disk format shared by the baseline file,
// the recovery snapshot, and final artifacts.
func (c *Configuration) Encode(w io.Writer) error {
	compact, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// Decode reads an ordered configuration document from r.
func Decode(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := New()
	if err := cfg.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return cfg, nil
}
