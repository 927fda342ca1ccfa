package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetResume(catalog string) (*ResumeState, error)
	SaveResume(state ResumeState)
	RecordView(catalog, episodeID string) error
	Views(catalog string) (map[string]int, error)
	Forget(catalog string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
