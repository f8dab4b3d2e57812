package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"agrivision-service/internal/imaging"
	"agrivision-service/internal/models"
	"agrivision-service/internal/worker"
)

type fakeClassifier struct {
	prediction models.Prediction
	err        error
	readyErr   error
	calls      int
}

func (f *fakeClassifier) Classify(ctx context.Context, tensor *imaging.Tensor) (models.Prediction, error) {
	f.calls++
	return f.prediction, f.err
}

func (f *fakeClassifier) Ready() error { return f.readyErr }

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type fakeSearcher struct {
	results []models.VideoResult
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int64) ([]models.VideoResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

// memoryCache stores JSON encoded values like the Redis cache repository.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return errors.New("miss")
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

// inlinePool runs jobs synchronously on submit.
type inlinePool struct {
	jobs []string
	errs []error
}

func (p *inlinePool) SubmitJob(job worker.Job) error {
	p.jobs = append(p.jobs, job.Name)
	if err := job.Run(context.Background()); err != nil {
		p.errs = append(p.errs, err)
	}
	return nil
}

type fakeObjectStore struct {
	uploads map[string][]byte
	err     error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: map[string][]byte{}}
}

func (f *fakeObjectStore) UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.uploads[bucketName+"/"+objectName] = data
	return nil
}

func (f *fakeObjectStore) PresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	return "https://objects.local/" + bucketName + "/" + objectName, nil
}

type fakeScanLog struct {
	records []models.ScanRecord
	err     error
}

func (f *fakeScanLog) Append(record models.ScanRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeScanLog) Tail(n int) ([]models.HistoryEntry, error) {
	out := []models.HistoryEntry{}
	for _, r := range f.records {
		out = append(out, r.HistoryEntry())
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

type fakeScanMirror struct {
	records []models.ScanRecord
}

func (f *fakeScanMirror) Create(ctx context.Context, record models.ScanRecord) error {
	f.records = append(f.records, record)
	return nil
}

type fakePublisher struct {
	events []models.ScanEvent
}

func (f *fakePublisher) PublishScan(ctx context.Context, event models.ScanEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeFeedbackLog struct {
	records []models.FeedbackRecord
}

func (f *fakeFeedbackLog) Append(record models.FeedbackRecord) error {
	f.records = append(f.records, record)
	return nil
}

type fakeFeedbackMirror struct {
	records []models.FeedbackRecord
}

func (f *fakeFeedbackMirror) Create(ctx context.Context, record models.FeedbackRecord) error {
	f.records = append(f.records, record)
	return nil
}

type fakeSpeech struct {
	err   error
	texts []string
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	return []byte("mp3"), f.err
}

func (f *fakeSpeech) Render(ctx context.Context, text, languageCode string) (*models.VoiceSection, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return &models.VoiceSection{LanguageCode: languageCode, AudioHTML: AudioHTML([]byte("mp3"))}, nil
}
