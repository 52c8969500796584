package constants

import (
	"os"
	"strings"
	"time"
)

const NumStrings = 6

// MaxFret is the highest fret slot the fretboard renders.
const MaxFret = 12

const (
	MutedFret = -1
	OpenFret  = 0
)

// standard tuning, low to high: E2 A2 D3 G3 B3 E4
var OpenStringFrequencies = [NumStrings]float64{82.41, 110.00, 146.83, 196.00, 246.94, 329.63}
var OpenStringPitches = [NumStrings]uint8{40, 45, 50, 55, 59, 64}
var StringNames = [NumStrings]string{"E", "A", "D", "G", "B", "e"}

const (
	ToneDuration  = 1500 * time.Millisecond
	StrumInterval = 50 * time.Millisecond
	PulseDuration = 500 * time.Millisecond

	StartGain = 0.3
	EndGain   = 0.01
)

const SampleRate = 44100

// ClientIdle is how long a browser's board outlives its last request once
// no event stream is open.
const ClientIdle = 10 * time.Minute

func GetAddr() string {
	addr := os.Getenv("FRETBOARD_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetCatalogURL names where chord definitions are loaded from.
// See catalog.Open for the supported schemes.
func GetCatalogURL() string {
	url := os.Getenv("CATALOG_URL")
	if url != "" {
		return url
	}
	return "builtin:"
}

func GetCatalogTable() string {
	table := os.Getenv("CATALOG_TABLE")
	if table != "" {
		return table
	}
	return "fretboard-chords"
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetAWSRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}

func GetCORSOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return []string{"*"}
	}
	return strings.Split(origins, ",")
}
