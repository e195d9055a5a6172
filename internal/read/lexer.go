package read

import "github.com/alecthomas/participle/v2/lexer"

// tokenLexer is the shared lexer for both the pamela and magic grammars
// (spec §4.1, §6): whitespace is "[,\s]+" (commas are insignificant, as in
// Clojure) and comments run from ";" to end-of-line. Rule order matters —
// the simple lexer tries rules in the order given and takes the first
// match at each position, so Float must precede Int and Keyword must
// precede Symbol.
var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "Whitespace", Pattern: `[,\s]+`},
	{Name: "Float", Pattern: `[-+]?[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Keyword", Pattern: `:[A-Za-z_*][A-Za-z0-9_\-*+!?<>=./]*`},
	{Name: "Punct", Pattern: `[()\[\]{}]`},
	{Name: "Symbol", Pattern: `[A-Za-z_*=][A-Za-z0-9_\-*+!?<>=./]*`},
})
