package description

// Config holds runtime knobs for the description service.
type Config struct {
	HistoryLimit int
	SavedLimit   int
	CacheSize    int
}
