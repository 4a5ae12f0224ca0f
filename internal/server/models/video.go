package models

import "time"

// Video statuses. A video is queued at upload and flipped to processed once
// the ML pipeline reports its inference results.
const (
	StatusQueued    = "queued"
	StatusProcessed = "processed"
)

// Inference is one gesture-recognition prediction reported by the pipeline.
// Numeric-looking fields are string-encoded on the wire and stored as-is.
type Inference struct {
	Word            string `json:"word"`
	Probability     string `json:"probability"`
	CurrentDuration string `json:"current_duration"`
	SentenceTillNow string `json:"sentence_till_now"`
	LLMPrediction   string `json:"llm_prediction"`
}

// Video is one uploaded clip owned by a user. PublicID is the object storage
// key used for deletion; ProcessedData stays empty until the pipeline writes
// back.
type Video struct {
	ID                string
	UserID            string
	URL               string
	PublicID          string
	Name              string
	Status            string
	ProcessedVideoURI string
	ProcessedData     []Inference
	CreatedAt         time.Time
}
