// Package sound names the feedback cues the client plays on study-flow
// events. Playback is entirely client-side; the service only decides which
// cue, if any, a response should carry.
package sound

type Cue string

const (
	CueNavigate Cue = "navigate"
	CueSelect   Cue = "select"
	CueSubmit   Cue = "submit"
	CueComplete Cue = "complete"
)

// Service is constructed once at bootstrap and injected where cues are
// emitted, rather than living as ambient global state.
type Service struct {
	enabled bool
}

func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// Cue returns the cue name for the client, or empty when effects are
// disabled.
func (s *Service) Cue(c Cue) string {
	if s == nil || !s.enabled {
		return ""
	}
	return string(c)
}
