package queue

const TypeTranscriptEmbed = "transcript:embed"

// TranscriptEmbedPayload asks the worker to embed one transcribed part so
// it becomes searchable.
type TranscriptEmbedPayload struct {
	PartID string `json:"part_id"`
}
