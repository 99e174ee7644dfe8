// parser.go turns a raw query into tokens bound to matchers.
//
// Terms are separated by whitespace. Double quotes group text containing
// spaces into one term and are removed from it; an unterminated quote runs to
// the end of the query. An unquoted "|" or "||" term starts a new alternative. Every
// token keeps byte spans in raw-query coordinates so a host can highlight
// the query as typed.

package search

// Token is one term of a query bound to the matcher that claimed it.
type Token struct {
	Text        string  // Term text with quotes removed
	Span        Span    // Raw-query bytes covered by the term, quotes included
	Matcher     Matcher // Nil when no registered matcher claimed the term
	Operand     string  // Text left after the grammar is removed
	Inverted    bool    // A negation marker was present
	Grammar     Span    // Raw-query bytes consumed by the prefix grammar
	UsesGrammar bool    // False for always-match fallback and unclaimed terms
}

// MatcherName returns the claiming matcher's name, or "" for unclaimed terms.
func (t Token) MatcherName() string {
	if t.Matcher == nil {
		return ""
	}
	return t.Matcher.Name()
}

// Query is a parsed search. It is immutable and safe to share between
// goroutines; per-invocation state lives in an Evaluator.
type Query struct {
	Raw          string
	Alternatives [][]Token // OR of ANDs; never contains an empty alternative
}

// Empty reports whether the query has no terms. An empty query matches
// every entry.
func (q Query) Empty() bool { return len(q.Alternatives) == 0 }

// Tokens returns all tokens across alternatives in query order.
func (q Query) Tokens() []Token {
	var out []Token
	for _, alt := range q.Alternatives {
		out = append(out, alt...)
	}
	return out
}

// Highlight is a styled region of the raw query.
type Highlight struct {
	Span    Span   `json:"span"`
	Style   Style  `json:"style"`
	Matcher string `json:"matcher"`
}

// Highlights returns the grammar spans consumed by matchers, in query order.
// Tokens claimed through the always-match fallback have no highlight.
func (q Query) Highlights() []Highlight {
	var out []Highlight
	for _, t := range q.Tokens() {
		if !t.UsesGrammar || t.Matcher == nil || t.Grammar.Empty() {
			continue
		}
		out = append(out, Highlight{Span: t.Grammar, Style: t.Matcher.Style(), Matcher: t.Matcher.Name()})
	}
	return out
}

// Parse splits raw into terms and binds each term to a matcher from reg.
func Parse(raw string, reg *Registry) Query {
	matchers := reg.All()
	q := Query{Raw: raw}

	var alt []Token
	for _, tm := range splitTerms(raw) {
		if tm.separator {
			if len(alt) > 0 {
				q.Alternatives = append(q.Alternatives, alt)
			}
			alt = nil
			continue
		}
		alt = append(alt, bind(tm, matchers))
	}
	if len(alt) > 0 {
		q.Alternatives = append(q.Alternatives, alt)
	}
	return q
}

// bind claims a term for the first matcher whose prefix grammar applies, in
// registration order. If none does, the first always-match matcher takes
// the term as bare text. An unclaimed term keeps a nil matcher.
func bind(tm term, matchers []Matcher) Token {
	tok := Token{Text: tm.text, Span: tm.span, Operand: tm.text}

	for _, m := range matchers {
		if r := checkMatcherPrefix(m, tm.text); r.Applicable() {
			return tm.token(tok, m, r)
		}
	}
	for _, m := range matchers {
		if m.Mode() == ModeAlways {
			return tm.token(tok, m, checkFallback(tm.text))
		}
	}
	return tok
}

// term is one whitespace-separated unit of the raw query.
type term struct {
	text      string
	offsets   []int // raw-query byte offset of each byte of text
	span      Span
	separator bool
}

func (tm term) token(tok Token, m Matcher, r ApplicableResult) Token {
	tok.Matcher = m
	tok.Operand = r.Operand()
	tok.Inverted = r.Inverted()
	if g, ok := r.Grammar(); ok && !g.Empty() {
		tok.Grammar = tm.rawSpan(g)
		tok.UsesGrammar = true
	}
	return tok
}

// rawSpan maps a span of the term text to raw-query coordinates.
func (tm term) rawSpan(s Span) Span {
	if s.Empty() || s.End > len(tm.offsets) {
		return Span{}
	}
	return Span{Start: tm.offsets[s.Start], End: tm.offsets[s.End-1] + 1}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isSeparator reports whether an unquoted term splits alternatives.
func isSeparator(s string) bool {
	return s == "|" || s == "||"
}

// splitTerms tokenises the raw query. Empty terms (such as `""`) are
// dropped.
func splitTerms(raw string) []term {
	var (
		terms   []term
		text    []byte
		offsets []int
		start   = -1
		quoted  bool // term contained a quote
		inQuote bool
	)

	flush := func(end int) {
		if start < 0 {
			return
		}
		switch {
		case !quoted && isSeparator(string(text)):
			terms = append(terms, term{separator: true, span: Span{Start: start, End: end}})
		case len(text) > 0:
			terms = append(terms, term{
				text:    string(text),
				offsets: offsets,
				span:    Span{Start: start, End: end},
			})
		}
		text, offsets, start, quoted = nil, nil, -1, false
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
				continue
			}
			text = append(text, c)
			offsets = append(offsets, i)
		case c == '"':
			if start < 0 {
				start = i
			}
			inQuote, quoted = true, true
		case isSpace(c):
			flush(i)
		default:
			if start < 0 {
				start = i
			}
			text = append(text, c)
			offsets = append(offsets, i)
		}
	}
	flush(len(raw))
	return terms
}
