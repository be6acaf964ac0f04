package indexer

import (
	"fmt"

	"github.com/gamedevCloudy/youtube-automation/internal/models"
)

// Splitter breaks transcript units into overlapping character windows so each
// embedded fragment stays within the embedder's useful input size.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a splitter with the given window size and overlap, both
// in characters.
func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}
	return &Splitter{size: size, overlap: overlap}
}

// Split turns a transcript unit into embedding records. A unit that fits in
// one window keeps the chunk ID as its record ID; longer units get numbered
// sub-IDs. Every fragment inherits the unit's time range, since character
// offsets within subtitle text do not map cleanly onto the audio timeline.
func (s *Splitter) Split(collectionID string, unit models.TranscriptUnit) []*models.EmbeddingRecord {
	text := []rune(unit.Text)
	if len(text) == 0 {
		return nil
	}

	record := func(id, fragment string) *models.EmbeddingRecord {
		return &models.EmbeddingRecord{
			RecordID:     id,
			CollectionID: collectionID,
			VideoID:      unit.VideoID,
			ChunkID:      unit.ChunkID,
			StartTime:    unit.StartTime,
			EndTime:      unit.EndTime,
			Text:         fragment,
		}
	}

	if len(text) <= s.size {
		return []*models.EmbeddingRecord{record(unit.ChunkID, unit.Text)}
	}

	var records []*models.EmbeddingRecord
	step := s.size - s.overlap
	for i, n := 0, 0; i < len(text); i, n = i+step, n+1 {
		end := i + s.size
		if end > len(text) {
			end = len(text)
		}
		id := fmt.Sprintf("%s_%03d", unit.ChunkID, n)
		records = append(records, record(id, string(text[i:end])))
		if end == len(text) {
			break
		}
	}
	return records
}
