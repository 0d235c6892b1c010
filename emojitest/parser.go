package emojitest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/unisearch"
)

// A data line looks like
//
//    1F636 200D 1F32B FE0F ; fully-qualified # 😶‍🌫️ E13.1 face in clouds
//
var lineRE = regexp.MustCompile(`^([0-9A-Fa-f]+(?:[ \t]+[0-9A-Fa-f]+)*)[ \t]*;[ \t]*` +
	`(fully-qualified|minimally-qualified|unqualified|component)[ \t]*#[ \t]*` +
	`(\S+)[ \t]+E(\d+\.\d+)[ \t]+(.*\S)[ \t]*$`)

// Mismatch is a data line which did not match the line grammar.
type Mismatch struct {
	Line int    // 1-based line number
	Text string // line content
}

func (m Mismatch) String() string {
	return fmt.Sprintf("line %d: %q", m.Line, m.Text)
}

// Parser reads emoji-test.txt and produces raw records.
type Parser struct {
	scanner    *bufio.Scanner
	context    Context
	lineno     int
	mismatches []Mismatch
	consumed   bool
	err        error
}

// NewParser creates a parser for an input reader.
func NewParser(r io.Reader) *Parser {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	return &Parser{scanner: sc}
}

// ParseAll reads all records from r. The parser is returned for inspection of
// diagnostics.
func ParseAll(r io.Reader) ([]unisearch.RawRecord, *Parser) {
	p := NewParser(r)
	var records []unisearch.RawRecord
	for rec := range p.Records() {
		records = append(records, rec)
	}
	return records, p
}

// Records returns the sequence of raw records in input line order. The
// sequence reads lazily from the underlying reader and may be iterated only
// once; subsequent calls return an empty sequence.
func (p *Parser) Records() iter.Seq[unisearch.RawRecord] {
	return func(yield func(unisearch.RawRecord) bool) {
		if p.consumed {
			return
		}
		p.consumed = true
		for p.scanner.Scan() {
			p.lineno++
			line := p.scanner.Text()
			if p.lineno == 1 {
				line = strings.TrimPrefix(line, "\uFEFF")
			}
			var kind LineKind
			p.context, kind = p.context.Step(line)
			if kind != Data {
				if kind == GroupMarker {
					tracer().P("line", p.lineno).Debugf("group %q", p.context.Group)
				}
				continue
			}
			rec, ok := p.parseLine(line)
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
		if err := p.scanner.Err(); err != nil {
			p.err = fmt.Errorf("reading emoji test data at line %d: %w", p.lineno+1, err)
			tracer().Errorf("%v", p.err)
		}
	}
}

func (p *Parser) parseLine(line string) (unisearch.RawRecord, bool) {
	tok := borrowToken()
	defer tok.release()
	if !tok.match(line) {
		p.mismatch(line)
		return unisearch.RawRecord{}, false
	}
	cps, err := unisearch.ParseCodepoints(tok.fields[1])
	if err != nil {
		p.mismatch(line)
		return unisearch.RawRecord{}, false
	}
	q, _ := unisearch.ParseQualification(tok.fields[2])
	return unisearch.RawRecord{
		Codepoints:    cps,
		Qualification: q,
		Glyph:         tok.fields[3],
		Version:       tok.fields[4],
		Description:   tok.fields[5],
		Group:         p.context.Group,
		Subgroup:      p.context.Subgroup,
	}, true
}

func (p *Parser) mismatch(line string) {
	m := Mismatch{Line: p.lineno, Text: line}
	p.mismatches = append(p.mismatches, m)
	tracer().Infof("unmatched %s", m)
}

// Mismatches returns the data lines dropped for not matching the line grammar.
func (p *Parser) Mismatches() []Mismatch {
	return p.mismatches
}

// Unmatched is the number of dropped data lines.
func (p *Parser) Unmatched() int {
	return len(p.mismatches)
}

// Lines is the number of lines read so far.
func (p *Parser) Lines() int {
	return p.lineno
}

// Context is the grouping context in effect after the last line read.
func (p *Parser) Context() Context {
	return p.context
}

// Err returns the error of the underlying reader, if any.
func (p *Parser) Err() error {
	return p.err
}

// --- Line tokens -----------------------------------------------------------

// token holds the sub-matches of a data line. Tokens are short-lived objects
// and are pooled; the fields slice is re-used from line to line.
type token struct {
	fields []string // sub-matches, fields[0] is the whole line
	pooled bool     // borrowed from the token pool
}

const lineFields = 6

func newToken() *token {
	return &token{fields: make([]string, 0, lineFields)}
}

// match fills the token's fields with the sub-matches of line. Fields of a
// previous match are discarded.
func (tok *token) match(line string) bool {
	tok.fields = tok.fields[:0]
	loc := lineRE.FindStringSubmatchIndex(line)
	if loc == nil {
		return false
	}
	for i := 0; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			tok.fields = append(tok.fields, "")
			continue
		}
		tok.fields = append(tok.fields, line[loc[i]:loc[i+1]])
	}
	return true
}

type tokenPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalTokenPool *tokenPool

func init() {
	globalTokenPool = &tokenPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			tok := newToken()
			tok.pooled = true
			return tok, nil
		})
	globalTokenPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalTokenPool.opool = pool.NewObjectPool(globalTokenPool.ctx, factory, config)
}

func borrowToken() *token {
	o, err := globalTokenPool.opool.BorrowObject(globalTokenPool.ctx)
	if err != nil {
		tracer().Errorf("borrowing line token: %v", err)
		return newToken()
	}
	return o.(*token)
}

// release clears the token and puts it back into the pool.
func (tok *token) release() {
	tok.fields = tok.fields[:0]
	if !tok.pooled {
		return
	}
	if err := globalTokenPool.opool.ReturnObject(globalTokenPool.ctx, tok); err != nil {
		tracer().Errorf("returning line token: %v", err)
	}
}
