package search_test

import (
	"testing"

	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/search/argument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BindsMatchers(t *testing.T) {
	q := search.Parse("@minecraft -#shiny $c: *oak* r/^oak stick", defaults())
	require.Len(t, q.Alternatives, 1)

	toks := q.Tokens()
	require.Len(t, toks, 6)

	want := []struct {
		matcher  string
		operand  string
		inverted bool
	}{
		{argument.NameMod, "minecraft", false},
		{argument.NameTooltip, "shiny", true},
		{argument.NameTag, "c:", false},
		{argument.NameIdentifier, "oak*", false},
		{argument.NameRegex, "^oak", false},
		{argument.NameText, "stick", false},
	}
	for i, w := range want {
		assert.Equal(t, w.matcher, toks[i].MatcherName(), "token %d", i)
		assert.Equal(t, w.operand, toks[i].Operand, "token %d", i)
		assert.Equal(t, w.inverted, toks[i].Inverted, "token %d", i)
	}
}

func TestParse_Spans(t *testing.T) {
	raw := `oak "iron ingot" | @create`
	q := search.Parse(raw, defaults())
	require.Len(t, q.Alternatives, 2)
	require.Len(t, q.Alternatives[0], 2)
	require.Len(t, q.Alternatives[1], 1)

	oak := q.Alternatives[0][0]
	assert.Equal(t, "oak", oak.Text)
	assert.Equal(t, search.Span{Start: 0, End: 3}, oak.Span)

	iron := q.Alternatives[0][1]
	assert.Equal(t, "iron ingot", iron.Text)
	assert.Equal(t, "iron ingot", iron.Operand)
	assert.Equal(t, search.Span{Start: 4, End: 16}, iron.Span)
	assert.False(t, iron.UsesGrammar)

	create := q.Alternatives[1][0]
	assert.Equal(t, search.Span{Start: 19, End: 26}, create.Span)
	assert.Equal(t, search.Span{Start: 19, End: 20}, create.Grammar)
	assert.True(t, create.UsesGrammar)
	assert.Equal(t, "@", raw[create.Grammar.Start:create.Grammar.End])
}

func TestParse_QuotedPrefix(t *testing.T) {
	raw := `"@iron works"`
	q := search.Parse(raw, defaults())
	toks := q.Tokens()
	require.Len(t, toks, 1)

	assert.Equal(t, argument.NameMod, toks[0].MatcherName())
	assert.Equal(t, "iron works", toks[0].Operand)
	assert.Equal(t, search.Span{Start: 1, End: 2}, toks[0].Grammar)
	assert.Equal(t, "@", raw[1:2])
}

func TestParse_UnterminatedQuote(t *testing.T) {
	q := search.Parse(`stick "oak pl`, defaults())
	toks := q.Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, "oak pl", toks[1].Text)
	assert.Equal(t, search.Span{Start: 6, End: 13}, toks[1].Span)
}

func TestParse_EmptyAndSeparators(t *testing.T) {
	assert.True(t, search.Parse("", defaults()).Empty())
	assert.True(t, search.Parse("   \t ", defaults()).Empty())
	assert.True(t, search.Parse(`""`, defaults()).Empty())
	assert.True(t, search.Parse("| |", defaults()).Empty())

	q := search.Parse("| oak || stick |", defaults())
	require.Len(t, q.Alternatives, 2)
	assert.Equal(t, "oak", q.Alternatives[0][0].Text)
	assert.Equal(t, "stick", q.Alternatives[1][0].Text)
}

func TestParse_DoublePipeSeparates(t *testing.T) {
	single := search.Parse("$planks | $logs", defaults())
	double := search.Parse("$planks || $logs", defaults())
	require.Len(t, double.Alternatives, 2)
	assert.Equal(t, len(single.Alternatives), len(double.Alternatives))
	assert.Equal(t, "$logs", double.Alternatives[1][0].Text)

	// A pipe inside a term, or three in a row, is ordinary text
	q := search.Parse("a|b |||", defaults())
	require.Len(t, q.Alternatives, 1)
	toks := q.Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, "a|b", toks[0].Text)
	assert.Equal(t, "|||", toks[1].Text)
}

func TestParse_QuotedPipeIsText(t *testing.T) {
	q := search.Parse(`oak "|"`, defaults())
	require.Len(t, q.Alternatives, 1)
	toks := q.Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, "|", toks[1].Text)
	assert.Equal(t, argument.NameText, toks[1].MatcherName())
}

func TestParse_FirstRegisteredWins(t *testing.T) {
	// "@" registered before "@mod:" claims "@mod:x" with operand "mod:x".
	reg := search.NewRegistry()
	reg.Register(argument.Mod())
	reg.Register(argument.Tag(argument.WithPrefix("@mod:")))

	tok := search.Parse("@mod:create", reg).Tokens()[0]
	assert.Equal(t, argument.NameMod, tok.MatcherName())
	assert.Equal(t, "mod:create", tok.Operand)

	reg = search.NewRegistry()
	reg.Register(argument.Tag(argument.WithPrefix("@mod:")))
	reg.Register(argument.Mod())

	tok = search.Parse("@mod:create", reg).Tokens()[0]
	assert.Equal(t, argument.NameTag, tok.MatcherName())
	assert.Equal(t, "create", tok.Operand)
}

func TestParse_PrefixBeatsEarlierAlways(t *testing.T) {
	// The text matcher registered first still only claims what no prefix
	// claims.
	reg := search.NewRegistry()
	reg.Register(argument.Text())
	reg.Register(argument.Mod())

	toks := search.Parse("@create shaft", reg).Tokens()
	assert.Equal(t, argument.NameMod, toks[0].MatcherName())
	assert.Equal(t, argument.NameText, toks[1].MatcherName())
}

func TestParse_Unclaimed(t *testing.T) {
	reg := search.NewRegistry()
	reg.Register(argument.Mod())

	toks := search.Parse("stick", reg).Tokens()
	require.Len(t, toks, 1)
	assert.Nil(t, toks[0].Matcher)
	assert.Empty(t, toks[0].MatcherName())
	assert.Equal(t, "stick", toks[0].Operand)
}

func TestQuery_Highlights(t *testing.T) {
	q := search.Parse("@minecraft -#shiny stick", defaults())
	hl := q.Highlights()
	require.Len(t, hl, 2)

	assert.Equal(t, search.Span{Start: 0, End: 1}, hl[0].Span)
	assert.Equal(t, argument.NameMod, hl[0].Matcher)
	assert.Equal(t, "cyan", hl[0].Style.Colour)

	assert.Equal(t, search.Span{Start: 11, End: 13}, hl[1].Span)
	assert.Equal(t, argument.NameTooltip, hl[1].Matcher)
}
