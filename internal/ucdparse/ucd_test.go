package ucdparse

import (
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	input := strings.NewReader("# LineBreak.txt\n\n000E..001F;CM     # Cc    [18] <control-000E>..<control-001F>")
	sc, err := New(input)
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Next() {
		t.Fatal("expected a data line")
	}
	t.Logf("token = %v", sc.Token)
	if sc.Token.Error != nil {
		t.Fatal(sc.Token.Error)
	}
	if sc.Token.Field(1) != "CM" {
		t.Errorf("expected field #1 to be 'CM', is %q", sc.Token.Field(1))
	}
	from, to := sc.Token.Range()
	if from != 0x0e || to != 0x1f {
		t.Errorf("expected range to be 0E..1F, is %02X..%02X", from, to)
	}
	if !sc.Token.IsRange() {
		t.Errorf("expected token to be a range")
	}
	if sc.Token.Comment != "Cc    [18] <control-000E>..<control-001F>" {
		t.Errorf("unexpected comment %q", sc.Token.Comment)
	}
	if sc.Token.LineNo != 3 {
		t.Errorf("expected line number 3, is %d", sc.Token.LineNo)
	}
	if sc.Next() {
		t.Errorf("expected end of input")
	}
}

func TestParseUnicodeData(t *testing.T) {
	input := "0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n" +
		"ZZZZ;BROKEN;Lu;0;L;;;;;N;;;;;\n" +
		"0042;LATIN CAPITAL LETTER B;Lu;0;L;;;;;N;;;;0062;\n"
	var tokens []*Token
	err := Parse(strings.NewReader(input), func(token *Token) {
		tokens = append(tokens, token)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, have %d", len(tokens))
	}
	if tokens[0].Field(1) != "LATIN CAPITAL LETTER A" || tokens[0].Field(2) != "Lu" {
		t.Errorf("unexpected fields %v", tokens[0].Fields)
	}
	if tokens[1].Error == nil {
		t.Errorf("expected malformed code-point to be flagged")
	}
	if from, _ := tokens[2].Range(); from != 'B' {
		t.Errorf("expected parsing to continue after malformed line, have %v", tokens[2])
	}
	if tokens[0].Field(99) != "" {
		t.Errorf("expected out of range field to be empty")
	}
}

func TestInvalidRange(t *testing.T) {
	sc, _ := New(strings.NewReader("0020..0010; Backwards"))
	if !sc.Next() {
		t.Fatal("expected a token")
	}
	if sc.Token.Error == nil {
		t.Errorf("expected backwards range to be flagged")
	}
}
