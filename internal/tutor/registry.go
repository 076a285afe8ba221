package tutor

import "slices"

// Model identifies one of the supported LLM backends.
type Model string

const (
	ModelDeepSeek Model = "deepseek"
	ModelMistral  Model = "mistral"
	ModelGPT      Model = "gpt"
	ModelGemini   Model = "gemini"
)

// Catalog is the canonical list of supported models. The order matters:
// fact-check peers are picked by circular adjacency in this list.
var Catalog = []Model{ModelDeepSeek, ModelMistral, ModelGPT, ModelGemini}

// defaultPeers is the fallback pair for primaries that are not in the catalog.
var defaultPeers = [2]Model{ModelMistral, ModelGPT}

// FactCheckPeers picks the two models that independently fact-check answers
// from primary. They are the left and right neighbors of primary treating the
// catalog as a circular sequence, so a primary never reviews its own answer.
//
// An unknown primary resolves to the fixed default pair. That is a deliberate
// fallback, not an error.
func FactCheckPeers(primary Model) (Model, Model) {
	index := slices.Index(Catalog, primary)
	if index == -1 {
		return defaultPeers[0], defaultPeers[1]
	}
	n := len(Catalog)
	left := Catalog[(index-1+n)%n]
	right := Catalog[(index+1)%n]
	return left, right
}

// Known reports whether model is part of the catalog.
func Known(model Model) bool {
	return slices.Contains(Catalog, model)
}
