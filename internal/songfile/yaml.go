package songfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML song description. Event note tokens may be
// aliases (KICK, C_MAJOR); they are expanded through the alias table.
// Tokens the table does not know pass through unchanged, so plain note
// names outside the alias range (e.g. "C7") still work and truly bogus
// names surface as sequencer warnings at render time.
func ParseYAML(data []byte, opts ParseOptions) (*Song, error) {
	aliases := opts.aliases()
	song := &Song{}
	if err := yaml.Unmarshal(data, song); err != nil {
		return nil, fmt.Errorf("parsing song yaml: %w", err)
	}
	for ti := range song.Tracks {
		for ei := range song.Tracks[ti].Events {
			ev := &song.Tracks[ti].Events[ei]
			var notes []string
			for _, token := range ev.Notes {
				if resolved, ok := aliases.Lookup(token); ok {
					notes = append(notes, resolved...)
				} else {
					notes = append(notes, token)
				}
			}
			ev.Notes = notes
		}
	}
	song.applyDefaults()
	return song, nil
}

// EncodeYAML renders a song back to YAML.
func EncodeYAML(song *Song) ([]byte, error) {
	return yaml.Marshal(song)
}
