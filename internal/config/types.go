package config

// Search controls how frames are found and how lengths map to frame counts.
type Search struct {
	FPS        float64  `yaml:"fps"`
	Pattern    string   `yaml:"pattern"`
	Extensions []string `yaml:"extensions"`
}

// Candidates limits the output of the candidates command.
type Candidates struct {
	MaxStarts       int `yaml:"max_starts"`
	MatchesPerStart int `yaml:"matches_per_start"`
}

// Log configures diagnostic output on stderr.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents a findloop YAML config file.
type Config struct {
	Search     Search     `yaml:"search"`
	Candidates Candidates `yaml:"candidates"`
	Log        Log        `yaml:"log"`
}
