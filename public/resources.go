// Package public bundles the grammar resources the grammar loader embeds
// (spec §3.8 step 1, §6.4): pamela.ebnf, the main PAMELA grammar, and
// magic.ebnf, the magic sidecar grammar. Keeping them in their own package
// at the module root mirrors the resource-root layout spec §6.4 describes
// ("loaded from a known resource root, public/") while letting go:embed
// paths stay relative to the files they name.
package public

import _ "embed"

//go:embed pamela.ebnf
var PamelaEBNF string

//go:embed magic.ebnf
var MagicEBNF string
