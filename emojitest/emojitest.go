/*
Package emojitest reads the Unicode emoji test file "emoji-test.txt".

The file lists every emoji sequence together with its qualification, the
emoji version it was introduced with and its CLDR short name. Emoji are
organized in groups and subgroups, which are announced by comment lines:

   # group: Smileys & Emotion

   # subgroup: face-smiling
   1F600 ; fully-qualified # 😀 E1.0 grinning face
   1F603 ; fully-qualified # 😃 E0.6 grinning face with big eyes

Every data line is turned into a unisearch.RawRecord, carrying the group and
subgroup in effect at that line. Data lines not matching the grammar are
reported as mismatches and skipped; they never stop the parse.

See https://unicode.org/Public/emoji/latest/emoji-test.txt.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package emojitest

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to unisearch.etl .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.etl")
}

// LineKind classifies the lines of an emoji test file.
type LineKind int8

// Kinds of lines in emoji-test.txt.
const (
	Blank LineKind = iota
	GroupMarker
	SubgroupMarker
	Comment
	Data
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "Blank"
	case GroupMarker:
		return "GroupMarker"
	case SubgroupMarker:
		return "SubgroupMarker"
	case Comment:
		return "Comment"
	case Data:
		return "Data"
	}
	return "LineKind(?)"
}

const (
	groupPrefix    = "# group: "
	subgroupPrefix = "# subgroup: "
)

// Context is the grouping context carried from line to line. It is a value
// type: Step returns an updated copy and never modifies its receiver.
type Context struct {
	Group    string
	Subgroup string
}

// Step classifies a line and returns the context in effect after it.
func (c Context) Step(line string) (Context, LineKind) {
	switch {
	case strings.TrimSpace(line) == "":
		return c, Blank
	case strings.HasPrefix(line, groupPrefix):
		c.Group = strings.TrimSpace(line[len(groupPrefix):])
		return c, GroupMarker
	case strings.HasPrefix(line, subgroupPrefix):
		c.Subgroup = strings.TrimSpace(line[len(subgroupPrefix):])
		return c, SubgroupMarker
	case strings.HasPrefix(line, "#"):
		return c, Comment
	}
	return c, Data
}
