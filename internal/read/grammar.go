package read

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pamela-lang/pamela/public"
)

// stripKeywordColon removes the leading ":" participle's lexer includes in
// a Keyword token's raw text, so Datum.Keyword carries just the name.
func stripKeywordColon(t lexer.Token) (lexer.Token, error) {
	t.Value = t.Value[1:]
	return t, nil
}

// Grammars holds the two ready-to-use parser objects the grammar loader
// produces (spec §4.1): one for full PAMELA source files, one for magic
// sidecar files.
type Grammars struct {
	Pamela *participle.Parser[File]
	Magic  *participle.Parser[File]

	PamelaEBNF string
	MagicEBNF  string
}

// LoadGrammars builds both parser objects once per compile (spec §3.8: "Parser
// objects are built once per compile"). Both grammars share the same reader
// syntax (lists/vectors/maps/atoms); they are distinguished only by the
// top-level production each is used for — the forms ParseMagic reads with
// the magic grammar are checked to be a sequence of lvar-ctor forms by
// internal/magic.Load (spec §4.2).
func LoadGrammars() (*Grammars, error) {
	pamelaParser, err := participle.Build[File](
		participle.Lexer(tokenLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.Map(stripKeywordColon, "Keyword"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("parse: building pamela grammar: %w", err)
	}

	magicParser, err := participle.Build[File](
		participle.Lexer(tokenLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.Map(stripKeywordColon, "Keyword"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("parse: building magic grammar: %w", err)
	}

	return &Grammars{
		Pamela:     pamelaParser,
		Magic:      magicParser,
		PamelaEBNF: public.PamelaEBNF,
		MagicEBNF:  public.MagicEBNF,
	}, nil
}
