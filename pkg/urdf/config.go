package urdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Indent is the unit of indentation: Width repetitions of Char per level.
// A zero Width writes the whole document on one line.
type Indent struct {
	Char  rune
	Width int
}

// DefaultIndent is two spaces per level.
var DefaultIndent = Indent{Char: ' ', Width: 2}

func (i Indent) unit() string {
	if i.Width <= 0 {
		return ""
	}
	return strings.Repeat(string(i.Char), i.Width)
}

// MaterialReferences selects where named materials are described.
type MaterialReferences int

const (
	// AllNamedOnTop describes every named material once at the robot level
	// and references it by name from visuals.
	AllNamedOnTop MaterialReferences = iota
	// OnlyMultiUse keeps materials used by a single visual inline.
	OnlyMultiUse
	// AlwaysInline describes the material inside every visual.
	AlwaysInline
)

var materialReferenceNames = map[string]MaterialReferences{
	"all":    AllNamedOnTop,
	"multi":  OnlyMultiUse,
	"inline": AlwaysInline,
}

func (m MaterialReferences) String() string {
	for name, v := range materialReferenceNames {
		if v == m {
			return name
		}
	}
	return fmt.Sprintf("MaterialReferences(%d)", int(m))
}

// ParseMaterialReferences accepts "all", "multi" or "inline". The empty
// string selects AllNamedOnTop.
func ParseMaterialReferences(s string) (MaterialReferences, error) {
	if s == "" {
		return AllNamedOnTop, nil
	}
	m, ok := materialReferenceNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown material references %q (want all, multi or inline)", s)
	}
	return m, nil
}

// Target is the consumer the document is written for.
type Target int

const (
	// Standard writes hardware interfaces with the hardware_interface/ prefix.
	Standard Target = iota
	// Gazebo writes bare hardware interface names.
	Gazebo
)

func (t Target) String() string {
	if t == Gazebo {
		return "gazebo"
	}
	return "standard"
}

// ParseTarget accepts "standard" or "gazebo". The empty string selects Standard.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return Standard, nil
	case "gazebo":
		return Gazebo, nil
	}
	return 0, fmt.Errorf("unknown target %q (want standard or gazebo)", s)
}

// ParseIndent reads an indentation spec: a width in spaces, "tab" for one
// tab per level, or "flat" for a single line.
func ParseIndent(s string) (Indent, error) {
	switch strings.ToLower(s) {
	case "":
		return DefaultIndent, nil
	case "tab":
		return Indent{Char: '\t', Width: 1}, nil
	case "flat":
		return Indent{Char: ' ', Width: 0}, nil
	}
	width, err := strconv.Atoi(s)
	if err != nil || width < 0 {
		return Indent{}, fmt.Errorf("invalid indent %q (want a width, tab or flat)", s)
	}
	return Indent{Char: ' ', Width: width}, nil
}

// Config controls the emitted document.
type Config struct {
	Indent             Indent
	MaterialReferences MaterialReferences
	Target             Target
}

// Option configures a Config.
type Option func(*Config)

func WithIndent(char rune, width int) Option {
	return func(c *Config) { c.Indent = Indent{Char: char, Width: width} }
}

func WithMaterialReferences(m MaterialReferences) Option {
	return func(c *Config) { c.MaterialReferences = m }
}

func WithTarget(t Target) Option {
	return func(c *Config) { c.Target = t }
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{Indent: DefaultIndent}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
