package model

type ProgressionRequestBody struct {
	NumChords     int  `json:"num_chords"`
	StartOnTonic  bool `json:"start_on_tonic"`
	UseCommonOnly bool `json:"use_common_only"`
}

type ProgressionResponse struct {
	Progression []string    `json:"progression"`
	Length      int         `json:"length"`
	Frequencies [][]float64 `json:"frequencies"`
}

type PlayChordRequestBody struct {
	Frequencies          []float64 `json:"frequencies"`
	Instrument           string    `json:"instrument"`
	RootVolumeMultiplier float64   `json:"root_volume_multiplier"`
	ChordName            string    `json:"chord_name"`
}

type PlayToneRequestBody struct {
	Frequency  float64 `json:"frequency"`
	Instrument string  `json:"instrument"`
	Duration   float64 `json:"duration"`
}

type CheckAnswerRequestBody struct {
	Progression []string `json:"progression"`
}

type CheckAnswerResponse struct {
	Correct bool     `json:"correct"`
	Actual  []string `json:"actual"`
	User    []string `json:"user"`
}

type DeactivatedChordsBody struct {
	Chords []string `json:"chords"`
}

type CustomProgressionBody struct {
	Progression []string `json:"progression"`
}

type CustomProgressionsResponse struct {
	Progressions [][]string `json:"progressions"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
