package constants

import "os"

// SampleRate all audio is rendered at.
const SampleRate = 44100

// ReferenceA4 is the tuning reference in Hz.
const ReferenceA4 = 440.0

// DefaultChordDuration is how long each chord sounds, in seconds.
const DefaultChordDuration = 0.8

// DefaultBaseOctave places the tonic in the middle C octave.
const DefaultBaseOctave = 4

func GetDataPath() string {
	path := os.Getenv("EARTRAIN_DATA_PATH")
	if path != "" {
		return path
	}
	return "./eartrain.json"
}

func GetDynamoTable() string {
	table := os.Getenv("EARTRAIN_DYNAMO_TABLE")
	if table != "" {
		return table
	}
	return "eartrain-lists"
}

func GetDynamoRegion() string {
	region := os.Getenv("EARTRAIN_DYNAMO_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}

// GetDynamoEndpoint is set for local development against dynamodb-local;
// empty means the SDK default.
func GetDynamoEndpoint() string {
	return os.Getenv("EARTRAIN_DYNAMO_ENDPOINT")
}

// GetStoreBackend selects the persistence backend, "file" or "dynamo".
func GetStoreBackend() string {
	backend := os.Getenv("EARTRAIN_STORE")
	if backend != "" {
		return backend
	}
	return "file"
}

func GetServeAddr() string {
	addr := os.Getenv("EARTRAIN_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}
