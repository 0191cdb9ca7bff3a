// Package entity contains the core business objects of the project.
package entity

// Pillar identifies one of the four daily discipline categories a user tracks.
type Pillar string

const (
	PillarTrain   Pillar = "train"
	PillarEat     Pillar = "eat"
	PillarWord    Pillar = "word"
	PillarFreedom Pillar = "freedom"
)

// Pillars lists every pillar in display order.
var Pillars = []Pillar{PillarTrain, PillarEat, PillarWord, PillarFreedom}

// Valid reports whether p is one of the known pillars.
func (p Pillar) Valid() bool {
	switch p {
	case PillarTrain, PillarEat, PillarWord, PillarFreedom:
		return true
	default:
		return false
	}
}

// CompletionSource records how a pillar completion flag was last set.
type CompletionSource string

const (
	// SourceNone means the flag has never been set by anyone.
	SourceNone CompletionSource = ""
	// SourceManual means the user set the flag explicitly. Manual always
	// wins over auto-derived state.
	SourceManual CompletionSource = "manual"
	// SourceAuto means the flag was derived from logged pillar entries.
	SourceAuto CompletionSource = "auto"
)
