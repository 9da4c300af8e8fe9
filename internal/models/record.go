package models

import (
	"time"

	"github.com/zombar/scanreport/internal/scanner"
)

// RecordFromResult builds the storable record for a processed scan. The
// listing columns are pulled out of the document here so queries never
// need to open the raw JSON.
func RecordFromResult(id, title string, result *scanner.Result) *ScanRecord {
	now := time.Now().UTC()
	rec := &ScanRecord{
		ID:        id,
		Title:     title,
		Document:  result.Document.Raw(),
		Summary:   result.Summary,
		Failed:    result.Document.IsError(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc := result.Document
	if props, ok := doc.Properties(); ok {
		if remoteID, ok := props.ID(); ok {
			rec.RemoteID = remoteID
		}
		if rec.Title == "" {
			rec.Title, _ = props.Title()
		}
	}
	if ai, ok := doc.AI(); ok {
		if conf, ok := ai.ConfidenceAI(); ok {
			rec.AIProbability = conf * 100
		}
	}
	if plag, ok := doc.Plagiarism(); ok {
		rec.PlagiarismScore, _ = plag.Score()
	}
	return rec
}
