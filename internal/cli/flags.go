package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile        string
	NoCache        bool
	TargetLanguage string
	Strict         bool
	BatchFile      string
	Workers        int
	StoragePath    string
	AudioDir       string
	Debug          bool

	// Cache management
	List       bool
	DeleteID   int64
	ExportFile string
	Archive    bool

	// Provider flags
	Provider    string
	Fallback    string
	OpenAIModel string
	GeminiModel string
	ListModels  bool

	// Credential setters
	SetOpenAIKey   string
	SetOpenAIOrgID string
	SetGeminiKey   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Workers:     defaultWorkers,
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}
