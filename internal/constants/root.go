package constants

import "time"

const (
	AppName            = "tasklit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tasklit/tasklit.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// WeightsKey is the key-value store key holding the serialized scorer weights
	WeightsKey = "tasklit.scorer.weights"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tasklit-"
	BackupFileSuffix = ".db"

	// Scorer constants
	LearningRate        = 0.05
	DefaultMaxEpochs    = 300
	AccuracyCheckEvery  = 10
	TargetAccuracy      = 0.95
	DefaultNeuralBlend  = 0.7
	NeuralHighThreshold = 0.7
	NeuralMedThreshold  = 0.4

	// Smart priority thresholds
	SmartHighScore   = 6
	SmartMediumScore = 4

	// Canvas constants
	DefaultCanvasWidth = 50
	MinCanvasWidth     = 30

	// Summarizer constants
	MaxNameWords      = 5
	FallbackNameWords = 4
	DefaultTaskName   = "New Task"

	// API constants
	DefaultPort       = 8484
	ServerReadTimeout = 15 * time.Second
	ShutdownTimeout   = 5 * time.Second
)
