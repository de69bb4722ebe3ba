package services

import (
	"sync"
	"time"

	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/repository"
)

// In-memory repository fakes. Timestamps are assigned by the fake itself in
// insertion order, mirroring a store-owned clock.

type fakeApprovalRepo struct {
	mu        sync.Mutex
	records   map[string][]domain.ApprovalRecord
	nextID    uint
	appendErr error
	listErr   error
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{records: make(map[string][]domain.ApprovalRecord)}
}

func (f *fakeApprovalRepo) Append(record *domain.ApprovalRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Unix(0, 0).Add(time.Duration(f.nextID) * time.Millisecond)
	f.records[record.DocumentID] = append(f.records[record.DocumentID], *record)
	return nil
}

func (f *fakeApprovalRepo) ListByDocument(documentID string) ([]domain.ApprovalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	records := f.records[documentID]
	out := make([]domain.ApprovalRecord, len(records))
	copy(out, records)
	return out, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string][]domain.DocumentComment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string][]domain.DocumentComment)}
}

func (f *fakeCommentRepo) Append(comment *domain.DocumentComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Unix(0, 0).Add(time.Duration(f.nextID) * time.Millisecond)
	f.comments[comment.DocumentID] = append(f.comments[comment.DocumentID], *comment)
	return nil
}

func (f *fakeCommentRepo) ListByDocument(documentID string) ([]domain.DocumentComment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comments := f.comments[documentID]
	out := make([]domain.DocumentComment, len(comments))
	copy(out, comments)
	return out, nil
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	docs      map[string]domain.ProjectDocument
	protocols []domain.QualificationProtocol
	objects   []domain.QualificationObject
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]domain.ProjectDocument)}
}

func (f *fakeDocumentRepo) addDocument(doc domain.ProjectDocument) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = doc
}

func (f *fakeDocumentRepo) Create(doc *domain.ProjectDocument) error {
	f.addDocument(*doc)
	return nil
}

func (f *fakeDocumentRepo) FindByID(documentID string) (*domain.ProjectDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[documentID]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

func (f *fakeDocumentRepo) FindByProjectAndType(projectID string, docType domain.DocumentType) (*domain.ProjectDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.docs {
		if doc.ProjectID == projectID && doc.DocumentType == docType {
			found := doc
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeDocumentRepo) ListByProject(projectID string) ([]domain.ProjectDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ProjectDocument
	for _, doc := range f.docs {
		if doc.ProjectID == projectID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) CreateProtocol(protocol *domain.QualificationProtocol) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.protocols = append(f.protocols, *protocol)
	return nil
}

func (f *fakeDocumentRepo) ListProtocolsByProject(projectID string) ([]domain.QualificationProtocol, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QualificationProtocol
	for _, p := range f.protocols {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListSelectedObjects(projectID string) ([]domain.QualificationObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QualificationObject
	for _, obj := range f.objects {
		if obj.ProjectID == projectID && obj.Selected {
			out = append(out, obj)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []domain.AuditLog
	insertErr error
}

func (f *fakeAuditRepo) Insert(entry *domain.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	entry.ID = uint(len(f.entries) + 1)
	entry.CreatedAt = time.Unix(0, 0).Add(time.Duration(entry.ID) * time.Millisecond)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) Query(filter repository.AuditFilter) ([]domain.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AuditLog
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if filter.ActorID != "" && e.ActorID != filter.ActorID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeAuditRepo) snapshot() []domain.AuditLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AuditLog, len(f.entries))
	copy(out, f.entries)
	return out
}

type fakeCheckRepo struct {
	mu     sync.Mutex
	checks []domain.DocumentationCheck
}

func (f *fakeCheckRepo) Insert(check *domain.DocumentationCheck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	check.ID = uint(len(f.checks) + 1)
	check.CheckedAt = time.Unix(0, 0).Add(time.Duration(check.ID) * time.Millisecond)
	f.checks = append(f.checks, *check)
	return nil
}

func (f *fakeCheckRepo) FindLatest(qualificationObjectID, projectID string) (*domain.DocumentationCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.checks) - 1; i >= 0; i-- {
		c := f.checks[i]
		if c.QualificationObjectID == qualificationObjectID && c.ProjectID == projectID {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCheckRepo) List(projectID string, limit, offset int) ([]domain.DocumentationCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DocumentationCheck
	for i := len(f.checks) - 1; i >= 0; i-- {
		if f.checks[i].ProjectID == projectID {
			out = append(out, f.checks[i])
		}
	}
	return out, nil
}
