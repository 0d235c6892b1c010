/*
Package unisearch is about browsing Unicode reference data: characters and emoji.

Description

Unicode publishes its character and emoji data as line-oriented text files,
the emoji test file being the most readable of them:

   # group: Smileys & Emotion
   # subgroup: face-smiling
   1F600 ; fully-qualified # 😀 E1.0 grinning face

Third parties enrich this data with keywords (e.g., GitHub's gemoji). Users
want to search it: find every emoji whose description starts with "cat", every
character of a block, all emoji introduced with version 13.0, or all variants
of a given skin tone.

Contents

Package unisearch holds the data model shared by all sub-packages and the
record normalizer. Raw records are produced by the ETL packages

  emojitest   parses emoji-test.txt
  ucd         parses UnicodeData.txt, Blocks.txt and DerivedAge.txt
  gemoji      merges gemoji keywords into a dataset

and normalized by Normalize, which derives a canonical set of tags for each
record and assigns a stable ingestion order.

Searching is done by the packages

  predicate   header filter matching (prefix, regex, substring) and tag filters
  tagtoggle   computing the next tag filter on clicks on a tag chip
  querystate  mapping of filter and sort state to and from a URL query string
  grid        wiring the above to a render target and a data source

Tags

Tags are derived from a record's group, subgroup, qualification and version.
Derived tags are lower case, with spaces replaced by hyphens. Emoji with
skin-tone modifiers are tagged "skin-tone" plus the tone itself, e.g.

  woman: medium-light skin tone   =>  skin-tone, medium-light

Keywords merged from external sources pass through verbatim.

BSD License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package unisearch

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
