package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
	"github.com/38tter/beer-analyzer-sub000/internal/services"
)

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) UploadBeerImage(userID, beerID string, data []byte, contentType string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeAnalyzer struct {
	calls  int
	result *models.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) AnalyzeBeerImage(_ context.Context, image []byte, mimeType string) (*models.AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCreator struct {
	calls int
	err   error
	last  *models.BeerRecord
}

func (f *fakeCreator) Create(_ context.Context, res models.AnalysisResult, userID, imageURL string) (*models.BeerRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	rec := models.FromAnalysis(res, userID, imageURL, time.Now().UTC())
	rec.ID = "beer-001"
	f.last = rec
	return rec, nil
}

func analysisFixture() *models.AnalysisResult {
	return &models.AnalysisResult{
		BeerName:     "Hoppy Trails",
		Brand:        "X",
		Manufacturer: "unknown",
		ABV:          "5.0%",
		Capacity:     "unknown",
		Hops:         "Y",
	}
}

func TestAnalyze_Success(t *testing.T) {
	uploader := &fakeUploader{url: "https://img.example.com/b.jpg"}
	analyzer := &fakeAnalyzer{result: analysisFixture()}
	creator := &fakeCreator{}
	svc := services.NewAnalyzeService(uploader, analyzer, creator)

	rec, err := svc.Analyze(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "beer-001", rec.ID)
	assert.Equal(t, "https://img.example.com/b.jpg", rec.ImageURL)
	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, 1, creator.calls)
}

func TestAnalyze_UploadFailure(t *testing.T) {
	uploadErr := errors.New("bucket unavailable")
	uploader := &fakeUploader{err: uploadErr}
	analyzer := &fakeAnalyzer{result: analysisFixture()}
	creator := &fakeCreator{}
	svc := services.NewAnalyzeService(uploader, analyzer, creator)

	rec, err := svc.Analyze(context.Background(), []byte{1}, "image/jpeg", "user-1")
	assert.Nil(t, rec)

	var pipeErr *services.PipelineError
	assert.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, services.StageUploading, pipeErr.Stage)
	assert.ErrorIs(t, err, uploadErr)

	// Nothing past the failed stage ran.
	assert.Equal(t, 0, analyzer.calls)
	assert.Equal(t, 0, creator.calls)
}

func TestAnalyze_AnalysisFailureLeavesUploadOrphaned(t *testing.T) {
	// Upload succeeds, AI call times out: the pipeline fails at the analyzing
	// stage, no record is created, and the uploaded image is not cleaned up.
	uploader := &fakeUploader{url: "https://img.example.com/orphan.jpg"}
	analyzer := &fakeAnalyzer{err: context.DeadlineExceeded}
	creator := &fakeCreator{}
	svc := services.NewAnalyzeService(uploader, analyzer, creator)

	rec, err := svc.Analyze(context.Background(), []byte{1}, "image/jpeg", "user-1")
	assert.Nil(t, rec)

	var pipeErr *services.PipelineError
	assert.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, services.StageAnalyzing, pipeErr.Stage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, 0, creator.calls)
}

func TestAnalyze_PersistFailureReturnsTransientRecord(t *testing.T) {
	persistErr := errors.New("connection reset")
	uploader := &fakeUploader{url: "https://img.example.com/c.jpg"}
	analyzer := &fakeAnalyzer{result: analysisFixture()}
	creator := &fakeCreator{err: persistErr}
	svc := services.NewAnalyzeService(uploader, analyzer, creator)

	rec, err := svc.Analyze(context.Background(), []byte{1}, "image/jpeg", "user-1")

	var pipeErr *services.PipelineError
	assert.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, services.StagePersisting, pipeErr.Stage)
	assert.ErrorIs(t, err, persistErr)

	// The analysis is still surfaced, unsaved.
	assert.NotNil(t, rec)
	assert.Empty(t, rec.ID)
	assert.Equal(t, "Hoppy Trails", rec.BeerName)
	assert.Equal(t, "https://img.example.com/c.jpg", rec.ImageURL)
}

func TestAnalyze_NilStorageSkipsUpload(t *testing.T) {
	analyzer := &fakeAnalyzer{result: analysisFixture()}
	creator := &fakeCreator{}
	svc := services.NewAnalyzeService(nil, analyzer, creator)

	rec, err := svc.Analyze(context.Background(), []byte{1}, "image/jpeg", "user-1")
	assert.NoError(t, err)
	assert.Empty(t, rec.ImageURL)
}
