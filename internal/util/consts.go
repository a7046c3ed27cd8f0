package util

// Default locations, relative to the working directory.
const (
	DefaultSourceFolder  = "./source_folder"
	DefaultReplicaFolder = "./replica_folder"
	DefaultLogFolder     = "./log_folder"

	// DefaultIntervalSeconds is the default pause between two cycles.
	DefaultIntervalSeconds = 10
)

// ConfigFilename is the standard configuration file name.
const ConfigFilename = ".dirmirror.toml"
