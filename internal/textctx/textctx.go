// Package textctx converts free text into a formal context: sentences
// become objects, distinct lowercase tokens become attributes, and token
// occurrence becomes the incidence relation.
//
// Tokenization is pure surface form - no stemming, no stopword removal.
// Any function with the Adapter signature can replace it.
package textctx

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/fca"
)

// Adapter is the pluggable text-to-context signature.
type Adapter func(text string) *fca.Context

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
	wordPattern      = regexp.MustCompile(`\w+`)
)

// FromText builds a formal context from text. Sentences are split on
// punctuation boundaries and named sent_0, sent_1, ... in input order;
// attributes are the NFC-normalized lowercase tokens of each sentence.
// Empty text yields an empty context, never an error.
func FromText(text string) *fca.Context {
	// Normalize at the boundary so visually identical tokens are one
	// attribute regardless of the input's Unicode composition.
	text = norm.NFC.String(text)

	var (
		objects    []string
		attributes []string
		incidence  []fca.Incidence
	)

	for _, raw := range sentenceBoundary.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		id := fmt.Sprintf("sent_%d", len(objects))
		objects = append(objects, id)

		for _, word := range wordPattern.FindAllString(strings.ToLower(sentence), -1) {
			attributes = append(attributes, word)
			incidence = append(incidence, fca.Incidence{Object: id, Attribute: word})
		}
	}

	return fca.NewContext(objects, attributes, incidence)
}
