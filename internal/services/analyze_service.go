package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

// Stage identifies where in the analyze pipeline a failure happened.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageUploading  Stage = "uploading"
	StageAnalyzing  Stage = "analyzing"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
)

// PipelineError attributes a failure to its pipeline stage while preserving
// the underlying error for the caller.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("analyze pipeline failed while %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// ImageUploader stores the captured photo and returns a retrievable URL.
type ImageUploader interface {
	UploadBeerImage(userID, beerID string, data []byte, contentType string) (string, error)
}

// BeerAnalyzer runs the vision analysis over the photo.
type BeerAnalyzer interface {
	AnalyzeBeerImage(ctx context.Context, image []byte, mimeType string) (*models.AnalysisResult, error)
}

// RecordCreator persists a successful analysis.
type RecordCreator interface {
	Create(ctx context.Context, res models.AnalysisResult, userID, imageURL string) (*models.BeerRecord, error)
}

// AnalyzeService drives one capture through upload, analysis, and
// persistence. Each invocation is a single logical task that suspends at
// every external-call boundary; nothing here retries — a retry is always the
// user tapping again.
type AnalyzeService struct {
	storage ImageUploader // nil skips the upload step; the record keeps an empty image URL
	ai      BeerAnalyzer
	store   RecordCreator
}

func NewAnalyzeService(storage ImageUploader, ai BeerAnalyzer, store RecordCreator) *AnalyzeService {
	return &AnalyzeService{storage: storage, ai: ai, store: store}
}

// Analyze runs the pipeline for one captured image and returns the stored
// record. Failures carry their stage in a *PipelineError. When persistence is
// the step that fails, the transient (unsaved) record is returned together
// with the error so the caller can still surface the analysis.
//
// An image uploaded before a failed analysis is intentionally left in place:
// it stays available for a manual retry.
func (s *AnalyzeService) Analyze(ctx context.Context, image []byte, contentType, userID string) (*models.BeerRecord, error) {
	beerID := uuid.New().String()

	imageURL := ""
	if s.storage != nil {
		url, err := s.storage.UploadBeerImage(userID, beerID, image, contentType)
		if err != nil {
			return nil, &PipelineError{Stage: StageUploading, Err: err}
		}
		imageURL = url
	}

	result, err := s.ai.AnalyzeBeerImage(ctx, image, contentType)
	if err != nil {
		return nil, &PipelineError{Stage: StageAnalyzing, Err: err}
	}

	rec, err := s.store.Create(ctx, *result, userID, imageURL)
	if err != nil {
		log.Printf("analyze: persistence failed for user %s: %v", userID, err)
		transient := models.FromAnalysis(*result, userID, imageURL, time.Now().UTC())
		return transient, &PipelineError{Stage: StagePersisting, Err: err}
	}

	return rec, nil
}
