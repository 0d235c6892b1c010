package unisearch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRecord is returned for records violating the invariants of RawRecord.
var ErrInvalidRecord = errors.New("invalid record")

// Qualification is the emoji presentation status as defined in UTS #51.
type Qualification string

// Qualifications used in emoji-test.txt. Records of the Unicode character
// dataset carry no qualification.
const (
	NoQualification    Qualification = ""
	FullyQualified     Qualification = "fully-qualified"
	MinimallyQualified Qualification = "minimally-qualified"
	Unqualified        Qualification = "unqualified"
	Component          Qualification = "component"
)

// ParseQualification maps a qualification keyword to a Qualification.
// The second return value is false for unknown keywords.
func ParseQualification(s string) (Qualification, bool) {
	switch q := Qualification(s); q {
	case FullyQualified, MinimallyQualified, Unqualified, Component:
		return q, true
	}
	return NoQualification, false
}

// Codepoints is an ordered sequence of hex code-points forming one visual
// character. It is serialized as a space-separated string.
type Codepoints []string

// ParseCodepoints splits a space-separated list of hex code-points.
// Code-points are upper-cased; anything not a hex number is an error.
func ParseCodepoints(s string) (Codepoints, error) {
	fields := strings.Fields(s)
	cps := make(Codepoints, 0, len(fields))
	for _, f := range fields {
		if _, err := strconv.ParseUint(f, 16, 32); err != nil {
			return nil, fmt.Errorf("code-point %q: %w", f, err)
		}
		cps = append(cps, strings.ToUpper(f))
	}
	return cps, nil
}

// String returns the code-points separated by spaces.
func (cps Codepoints) String() string {
	return strings.Join(cps, " ")
}

// Runes converts the code-points to a string, i.e. the glyph they denote.
func (cps Codepoints) Runes() string {
	var b strings.Builder
	for _, cp := range cps {
		n, err := strconv.ParseUint(cp, 16, 32)
		if err != nil {
			continue
		}
		b.WriteRune(rune(n))
	}
	return b.String()
}

// MarshalJSON encodes the code-points as a single space-separated string.
func (cps Codepoints) MarshalJSON() ([]byte, error) {
	return json.Marshal(cps.String())
}

// UnmarshalJSON decodes a space-separated string of code-points.
func (cps *Codepoints) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCodepoints(s)
	if err != nil {
		return err
	}
	*cps = parsed
	return nil
}

// RawRecord is a record as produced by the ETL parsers and stored in a
// dataset document.
type RawRecord struct {
	Codepoints    Codepoints    `json:"codepoints" yaml:"codepoints"`
	Qualification Qualification `json:"qualification,omitempty" yaml:"qualification,omitempty"`
	Glyph         string        `json:"emoji" yaml:"emoji"`
	Description   string        `json:"description" yaml:"description"`
	Version       string        `json:"version" yaml:"version"`
	Group         string        `json:"group" yaml:"group"`
	Subgroup      string        `json:"subgroup" yaml:"subgroup"`
	Keywords      []string      `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Validate checks that a record has at least one code-point and a description.
func (raw *RawRecord) Validate() error {
	if len(raw.Codepoints) == 0 {
		return fmt.Errorf("%w: no code-points", ErrInvalidRecord)
	}
	if strings.TrimSpace(raw.Description) == "" {
		return fmt.Errorf("%w: %s has no description", ErrInvalidRecord, raw.Codepoints)
	}
	return nil
}

// Record is a normalized record. Records are immutable after normalization.
type Record struct {
	RawRecord `yaml:",inline"`
	Tags      []string `json:"tags" yaml:"tags"` // sorted, unique
	Order     int      `json:"order" yaml:"order"` // ingestion index
}

// HasTag returns true if tag is one of the record's tags.
func (rec *Record) HasTag(tag string) bool {
	return TagSet(rec.Tags).Contains(tag)
}

// Dataset is the JSON document shared between the ETL tools and the browser.
type Dataset struct {
	Success bool        `json:"success"`
	LastMod string      `json:"lastmod,omitempty"` // ISO-8601, emoji datasets only
	Data    []RawRecord `json:"data"`
}
