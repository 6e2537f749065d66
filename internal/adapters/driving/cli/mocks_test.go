package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// mockIngestService implements driving.IngestService.
type mockIngestService struct {
	lastOwnerID  string
	lastFilename string
	err          error
}

func (m *mockIngestService) Ingest(_ context.Context, ownerID, filename string, data []byte) (*domain.DocumentRecord, error) {
	m.lastOwnerID = ownerID
	m.lastFilename = filename
	if m.err != nil {
		return nil, m.err
	}
	return &domain.DocumentRecord{
		ID:               "doc-1",
		OwnerID:          ownerID,
		Filename:         domain.SanitizeFilename(filename),
		OriginalFilename: filename,
		SizeBytes:        int64(len(data)),
		ChunkCount:       3,
		VectorIDs:        []string{"v-1", "v-2", "v-3"},
		UploadedAt:       time.Now().UTC(),
	}, nil
}

// mockDocumentService implements driving.DocumentService.
type mockDocumentService struct {
	records     []domain.DocumentRecord
	deletedIDs  []string
	deleteCount int
	err         error
}

func (m *mockDocumentService) List(_ context.Context, _ string) ([]domain.DocumentRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockDocumentService) Get(_ context.Context, _, documentID string) (*domain.DocumentRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == documentID {
			return &m.records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) DeleteDocuments(_ context.Context, _ string, documentIDs []string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.deletedIDs = documentIDs
	return m.deleteCount, nil
}

// mockChatService implements driving.ChatService.
type mockChatService struct {
	lastQuestion string
	lastHistory  []driven.ChatMessage
	answer       string
	err          error
}

func (m *mockChatService) Ask(_ context.Context, _, question string, history []driven.ChatMessage) (string, error) {
	m.lastQuestion = question
	m.lastHistory = history
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

// setupTestServices installs mock services and returns them plus a
// cleanup function restoring the previous wiring.
func setupTestServices() (*mockIngestService, *mockDocumentService, *mockChatService, func()) {
	oldIngest := ingestService
	oldDocuments := documentService
	oldChat := chatService

	ingest := &mockIngestService{}
	documents := &mockDocumentService{
		records: []domain.DocumentRecord{
			{
				ID:               "doc-1",
				OwnerID:          "default",
				Filename:         "report.pdf",
				OriginalFilename: "report.pdf",
				ChunkCount:       3,
				VectorIDs:        []string{"v-1", "v-2", "v-3"},
				UploadedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		deleteCount: 1,
	}
	chat := &mockChatService{answer: "The report covers Q2 revenue."}

	SetServices(ingest, documents, chat)

	cleanup := func() {
		ingestService = oldIngest
		documentService = oldDocuments
		chatService = oldChat
	}
	return ingest, documents, chat, cleanup
}
