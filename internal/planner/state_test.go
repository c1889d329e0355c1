package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokrain/harmonia-api/internal/theory"
)

func TestPathArenaWalk(t *testing.T) {
	key, err := theory.NewKey("C", "major")
	require.NoError(t, err)

	arena := &pathArena{}
	choiceFor := func(degree int) Choice {
		triad, ok := key.DiatonicTriad(degree)
		require.True(t, ok)
		return Choice{
			Candidate: theory.Candidate{Chord: triad, Kind: theory.KindLiteral, Degree: degree},
			Key:       key,
		}
	}

	root := arena.append(noParent, choiceFor(1))
	mid := arena.append(root, choiceFor(4))
	leaf := arena.append(mid, choiceFor(5))
	// A sibling branch must not disturb the walk.
	arena.append(root, choiceFor(6))

	choices := arena.walk(leaf)
	require.Len(t, choices, 3)
	assert.Equal(t, "C", choices[0].Candidate.Chord.Symbol())
	assert.Equal(t, "F", choices[1].Candidate.Chord.Symbol())
	assert.Equal(t, "G", choices[2].Candidate.Chord.Symbol())
}

func TestAdvanceTracksRootsAndModulations(t *testing.T) {
	key, err := theory.NewKey("C", "major")
	require.NoError(t, err)

	state := HarmonicState{Key: key}
	tonic := theory.CandidatesForDegree(key, 1)[0]
	state = state.advance(tonic)

	assert.Equal(t, 1, state.Bar)
	assert.True(t, state.HasLast)
	assert.False(t, state.HasPrev)
	assert.Equal(t, tonic.Chord.Root, state.LastRoot)

	subdominant := theory.CandidatesForDegree(key, 4)[0]
	state = state.advance(subdominant)
	assert.True(t, state.HasPrev)
	assert.Equal(t, tonic.Chord.Root, state.PrevRoot)
	assert.Equal(t, subdominant.Chord.Root, state.LastRoot)
	assert.Zero(t, state.Modulations)

	target := key.Relative()
	triad, _ := target.DiatonicTriad(1)
	pivot := theory.Candidate{Chord: triad, Kind: theory.KindModulation, Degree: 1, TargetKey: &target}
	state = state.advance(pivot)
	assert.Equal(t, target, state.Key)
	assert.Equal(t, 1, state.Modulations)
}
