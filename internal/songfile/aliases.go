package songfile

import "strings"

// Aliases maps composition-friendly names (REST, C4, CSHARP4, C_MAJOR,
// KICK, ...) to lists of concrete note names. Lookup is case-insensitive.
// The table is immutable once built; there is no ambient global instance —
// construct one with DefaultAliases and pass it where needed.
type Aliases struct {
	m map[string][]string
}

// Lookup returns the notes behind an alias. The returned slice is a copy.
func (a *Aliases) Lookup(name string) ([]string, bool) {
	notes, ok := a.m[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(notes))
	copy(out, notes)
	return out, true
}

// Len returns the number of registered aliases.
func (a *Aliases) Len() int {
	return len(a.m)
}

func (a *Aliases) add(name string, notes []string) {
	a.m[strings.ToUpper(name)] = notes
}

var chromatic = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// chordRecipes are the alias-level chord shapes, as semitone offsets from
// the root.
var chordRecipes = []struct {
	name      string
	intervals []int
}{
	{"MAJOR", []int{0, 4, 7}},
	{"MINOR", []int{0, 3, 7}},
	{"DIM", []int{0, 3, 6}},
	{"AUG", []int{0, 4, 8}},
}

// DefaultAliases builds the standard alias table: every note from C2 to B5
// (sharp spellings, both "C#4" and "CSHARP4" forms), the triad chords on
// each of those roots ("C4_MAJOR", with octave-4 shorthand "C_MAJOR"), the
// drum voices, and REST.
func DefaultAliases() *Aliases {
	a := &Aliases{m: make(map[string][]string)}
	a.add("REST", nil)

	for octave := 2; octave <= 5; octave++ {
		for pc, letter := range chromatic {
			name := noteName(letter, octave)
			a.add(name, []string{name})
			a.add(sanitize(name), []string{name})

			for _, recipe := range chordRecipes {
				chord := make([]string, len(recipe.intervals))
				for i, offset := range recipe.intervals {
					chord[i] = noteName(chromatic[(pc+offset)%12], octave+(pc+offset)/12)
				}
				a.add(sanitize(name)+"_"+recipe.name, chord)
				a.add(name+"_"+recipe.name, chord)
				if octave == 4 {
					// Octave-4 shorthand, e.g. C_MAJOR.
					short := sanitize(letter) + "_" + recipe.name
					if _, exists := a.m[short]; !exists {
						a.add(short, chord)
					}
				}
			}
		}
	}

	a.add("KICK", []string{"C4"})
	a.add("SNARE", []string{"D4"})
	a.add("HAT", []string{"G4"})
	a.add("TOM", []string{"F4"})
	a.add("KICK_HAT", []string{"C4", "G4"})
	a.add("SNARE_HAT", []string{"D4", "G4"})
	return a
}

func noteName(letter string, octave int) string {
	return letter + string(rune('0'+octave))
}

// sanitize rewrites accidentals for contexts where "#" is awkward,
// e.g. "C#4" becomes "CSHARP4".
func sanitize(name string) string {
	return strings.ReplaceAll(name, "#", "SHARP")
}
