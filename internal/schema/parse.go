// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parser decodes a definition source from an io.Reader.
type Parser struct {
	name  string
	parse func([]byte) (*rawSchema, error)
}

var (
	// YAML parses definition sources written in YAML.
	YAML = Parser{"yaml", parseYAML}
	// JSON parses definition sources written in JSON.
	JSON = Parser{"json", parseJSON}
	// TOML parses definition sources written in TOML.
	TOML = Parser{"toml", parseTOML}
)

// ParserFor selects a parser from a file extension.
func ParserFor(path string) (Parser, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".json":
		return JSON, true
	case ".toml":
		return TOML, true
	}
	return Parser{}, false
}

// Load reads and parses the definition file at path.
func Load(path string) (*Schema, error) {
	parser, ok := ParserFor(path)
	if !ok {
		return nil, &ParseError{Source: path, Problems: []string{"unsupported file extension " + filepath.Ext(path)}}
	}

	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, errors.Wrap(err, "open schema")
	}
	defer f.Close() //nolint:errcheck

	s, err := parser.Parse(f)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Source = path
	}
	return s, err
}

// Parse decodes a definition source and builds a validated Schema.
func (p Parser) Parse(r io.Reader) (*Schema, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read schema")
	}

	raw, err := p.parse(data)
	if err != nil {
		return nil, &ParseError{Problems: []string{p.name + ": " + err.Error()}}
	}
	return raw.build()
}

type rawSchema struct {
	Package  string       `yaml:"package" json:"package" toml:"package"`
	Enums    []rawEnum    `yaml:"enums,omitempty" json:"enums,omitempty" toml:"enums"`
	Messages []rawMessage `yaml:"messages,omitempty" json:"messages,omitempty" toml:"messages"`
}

type rawEnum struct {
	Name        string         `yaml:"name" json:"name" toml:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	Values      []rawEnumValue `yaml:"values" json:"values" toml:"values"`
}

type rawEnumValue struct {
	Name   string `yaml:"name" json:"name" toml:"name"`
	Number *int32 `yaml:"number" json:"number" toml:"number"`
}

type rawMessage struct {
	Name        string     `yaml:"name" json:"name" toml:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
	Fields      []rawField `yaml:"fields" json:"fields" toml:"fields"`
}

type rawField struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	Type        string `yaml:"type" json:"type" toml:"type"`
	Optional    bool   `yaml:"optional,omitempty" json:"optional,omitempty" toml:"optional"`
	Repeated    bool   `yaml:"repeated,omitempty" json:"repeated,omitempty" toml:"repeated"`
	Number      int    `yaml:"number,omitempty" json:"number,omitempty" toml:"number"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" toml:"description"`
}

func (r *rawSchema) build() (*Schema, error) {
	var missing []string
	enums := make([]*Enum, 0, len(r.Enums))
	for _, re := range r.Enums {
		e := &Enum{Name: re.Name, Description: re.Description}
		for _, rv := range re.Values {
			if rv.Number == nil {
				missing = append(missing, "enum "+quote(re.Name)+": value "+quote(rv.Name)+" has no number")
				continue
			}
			e.Values = append(e.Values, EnumValue{Label: rv.Name, Number: *rv.Number})
		}
		enums = append(enums, e)
	}

	messages := make([]*Message, 0, len(r.Messages))
	for _, rm := range r.Messages {
		m := &Message{Name: rm.Name, Description: rm.Description}
		for _, rf := range rm.Fields {
			m.Fields = append(m.Fields, Field{
				Name:        rf.Name,
				Type:        rf.Type,
				Optional:    rf.Optional,
				Repeated:    rf.Repeated,
				Number:      rf.Number,
				Description: rf.Description,
			})
		}
		messages = append(messages, m)
	}

	s, err := New(r.Package, enums, messages)
	if len(missing) > 0 {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Problems = append(missing, perr.Problems...)
			return nil, perr
		}
		return nil, &ParseError{Problems: missing}
	}
	return s, err
}

func quote(s string) string {
	return `"` + s + `"`
}

func parseYAML(data []byte) (*rawSchema, error) {
	var raw rawSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &raw, nil
}

func parseJSON(data []byte) (*rawSchema, error) {
	var raw rawSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func parseTOML(data []byte) (*rawSchema, error) {
	var raw rawSchema
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &raw, nil
}
