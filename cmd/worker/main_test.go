package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resume-insight/internal/analyses"
	"resume-insight/internal/analysis"
	"resume-insight/internal/documents"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type stubExtractor struct {
	err error
}

func (s stubExtractor) ExtractEntities(ctx context.Context, text string) ([]analysis.Entity, error) {
	return nil, s.err
}

type stubScorer struct {
	score float64
}

func (s stubScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	return s.score, nil
}

type stubStore struct {
	data map[string][]byte
}

func (s *stubStore) Save(ctx context.Context, userId, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("not implemented")
}

func (s *stubStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	raw, ok := s.data[storageKey]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func newWorkerService(t *testing.T, engineErr error) *analyses.Service {
	t.Helper()
	docs := documents.NewMemoryRepo()
	repo := analyses.NewMemoryRepo()
	store := &stubStore{data: map[string][]byte{
		"user-1/resume.txt.extracted.txt": []byte("Built services with Python and Flask."),
	}}

	extractedAt := time.Now().UTC()
	doc := documents.Document{
		ID:               "doc-1",
		UserID:           "user-1",
		FileName:         "resume.txt",
		MimeType:         "text/plain",
		StorageKey:       "user-1/resume.txt",
		ExtractedTextKey: "user-1/resume.txt.extracted.txt",
		ExtractedAt:      &extractedAt,
		CreatedAt:        extractedAt,
	}
	if err := docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	a := analyses.Analysis{
		ID:         "analysis-1",
		DocumentID: doc.ID,
		UserID:     "user-1",
		Status:     analyses.StatusQueued,
		CreatedAt:  extractedAt,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}

	return &analyses.Service{
		Repo:   repo,
		Docs:   docs,
		Store:  store,
		Engine: analysis.NewAnalyzer(stubExtractor{err: engineErr}, stubScorer{score: 0.6}),
	}
}

func message(body string) sqstypes.Message {
	return sqstypes.Message{
		MessageId:     aws.String("m-1"),
		ReceiptHandle: aws.String("rh-1"),
		Body:          aws.String(body),
	}
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	svc := newWorkerService(t, nil)
	client := &fakeSQS{}

	handleMessage(context.Background(), svc, client, "queue-url", message(`{"analysisId":"analysis-1","requestId":"req-1","version":1}`))

	if len(client.deleted) != 1 || client.deleted[0] != "rh-1" {
		t.Fatalf("expected message deleted, got %v", client.deleted)
	}
	got, err := svc.Repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("get analysis: %v", err)
	}
	if got.Status != analyses.StatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
}

func TestWorkerDoesNotDeleteOnFailure(t *testing.T) {
	svc := newWorkerService(t, errors.New("ner down"))
	client := &fakeSQS{}

	handleMessage(context.Background(), svc, client, "queue-url", message(`{"analysisId":"analysis-1","requestId":"req-1","version":1}`))

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete on failure, got %v", client.deleted)
	}
	got, _ := svc.Repo.GetByID(context.Background(), "analysis-1")
	if got.Status != analyses.StatusFailed {
		t.Fatalf("expected failed, got %s", got.Status)
	}
	if got.ErrorCode != analyses.ErrorCodeCollaborator {
		t.Fatalf("expected collaborator error code, got %s", got.ErrorCode)
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	svc := newWorkerService(t, nil)
	client := &fakeSQS{}

	handleMessage(context.Background(), svc, client, "queue-url", message("{not json"))

	if len(client.deleted) != 1 {
		t.Fatalf("expected unrecoverable message deleted, got %v", client.deleted)
	}
}

func TestWorkerDeletesOnMissingAnalysisID(t *testing.T) {
	svc := newWorkerService(t, nil)
	client := &fakeSQS{}

	handleMessage(context.Background(), svc, client, "queue-url", message(`{"requestId":"req-1","version":1}`))

	if len(client.deleted) != 1 {
		t.Fatalf("expected unrecoverable message deleted, got %v", client.deleted)
	}
}
