package textctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromText_Sentences(t *testing.T) {
	ctx := FromText("The cat sat. The dog ran! Did the cat run?")

	assert.Equal(t, 3, ctx.ObjectCount())
	assert.Equal(t, []string{"sent_0", "sent_1", "sent_2"}, ctx.Objects())
	assert.Equal(t, []string{"cat", "did", "dog", "ran", "run", "sat", "the"}, ctx.Attributes())

	assert.True(t, ctx.Incident("sent_0", "cat"))
	assert.True(t, ctx.Incident("sent_0", "sat"))
	assert.False(t, ctx.Incident("sent_0", "dog"))
	assert.True(t, ctx.Incident("sent_1", "dog"))
	assert.True(t, ctx.Incident("sent_2", "run"))
}

func TestFromText_Lowercasing(t *testing.T) {
	ctx := FromText("Alpha ALPHA alpha.")

	require.Equal(t, 1, ctx.ObjectCount())
	assert.Equal(t, []string{"alpha"}, ctx.Attributes())
}

func TestFromText_EmptyAndBlank(t *testing.T) {
	for _, text := range []string{"", "   ", "...", "?! ?!"} {
		ctx := FromText(text)
		assert.Equal(t, 0, ctx.ObjectCount(), "text %q", text)
		assert.Equal(t, 0, ctx.AttributeCount(), "text %q", text)
	}
}

func TestFromText_TrailingPunctuationOptional(t *testing.T) {
	with := FromText("alpha beta.")
	without := FromText("alpha beta")

	assert.Equal(t, with.Attributes(), without.Attributes())
	assert.Equal(t, with.ObjectCount(), without.ObjectCount())
}

func TestFromText_UnicodeNormalization(t *testing.T) {
	// "café" composed vs decomposed must land on one attribute.
	composed := "café au lait."
	decomposed := "café au lait."

	a := FromText(composed)
	b := FromText(decomposed)
	assert.Equal(t, a.Attributes(), b.Attributes())
}

func TestFromText_NumbersAndUnderscores(t *testing.T) {
	ctx := FromText("v2 beat snake_case twice.")

	assert.Equal(t, []string{"beat", "snake_case", "twice", "v2"}, ctx.Attributes())
}
