package config

// Audit controls where finished sessions are persisted.
type Audit struct {
	// Format is "csv" or "sqlite".
	Format string `yaml:"format"`
	// Dir receives Audit_<stamp>.csv files.
	Dir string `yaml:"dir"`
	// Database is the SQLite file that receives audit_<stamp> tables.
	Database string `yaml:"database"`
}

// Speech controls spoken feedback.
type Speech struct {
	Enabled bool `yaml:"enabled"`
	// Command overrides the platform TTS program. Args are passed before the
	// utterance text.
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
	// Rate is the speaking rate in words per minute for the default command.
	Rate int `yaml:"rate"`
}

// Source controls how the pose stream is read.
type Source struct {
	// Path is a JSON Lines file or "-" for stdin.
	Path string `yaml:"path"`
	// FPS paces replay; 0 reads as fast as frames arrive.
	FPS float64 `yaml:"fps"`
}

// Log controls diagnostic output.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents liftlogic.yaml.
type Config struct {
	// Mode is the exercise selected at startup: "squat" or "curl".
	Mode   string `yaml:"mode"`
	Audit  Audit  `yaml:"audit"`
	Speech Speech `yaml:"speech"`
	Source Source `yaml:"source"`
	Log    Log    `yaml:"log"`
}
