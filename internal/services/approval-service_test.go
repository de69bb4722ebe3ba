package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
)

var testActor = dto.Principal{ActorID: "a0000000-0000-0000-0000-000000000001", ActorName: "Иван Петров", ActorRole: "engineer"}
var secondActor = dto.Principal{ActorID: "a0000000-0000-0000-0000-000000000002", ActorName: "Мария Сидорова", ActorRole: "manager"}

type approvalFixture struct {
	svc       ApprovalService
	approvals *fakeApprovalRepo
	comments  *fakeCommentRepo
	documents *fakeDocumentRepo
	audit     *fakeAuditRepo
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()
	f := &approvalFixture{
		approvals: newFakeApprovalRepo(),
		comments:  newFakeCommentRepo(),
		documents: newFakeDocumentRepo(),
		audit:     &fakeAuditRepo{},
	}
	f.svc = NewApprovalService(f.approvals, f.comments, f.documents, NewAuditService(f.audit))
	return f
}

func (f *approvalFixture) addDoc(id, projectID string, docType domain.DocumentType) {
	f.documents.addDocument(domain.ProjectDocument{
		ID:           id,
		ProjectID:    projectID,
		DocumentType: docType,
		FileName:     string(docType) + ".pdf",
		FileURL:      "https://files.example/" + id,
		UploadedBy:   testActor.ActorID,
	})
}

func TestResolveStatusEmptyLedgerIsPending(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeContract)

	status, err := f.svc.ResolveStatus("doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, status)
}

func TestResolveStatusPropagatesReadFailure(t *testing.T) {
	f := newApprovalFixture(t)
	f.approvals.listErr = errors.New("connection refused")

	_, err := f.svc.ResolveStatus("doc-1")
	require.Error(t, err)
}

func TestResolveStatusFollowsLastRecord(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeContract)

	steps := []struct {
		transition func(dto.Principal, string, string) (*dto.TransitionResult, error)
		comment    string
		want       domain.ApprovalStatus
	}{
		{f.svc.Approve, "", domain.ApprovalStatusApproved},
		{f.svc.Reject, "не хватает подписи", domain.ApprovalStatusRejected},
		{f.svc.Approve, "исправлено", domain.ApprovalStatusApproved},
	}

	for i, step := range steps {
		result, err := step.transition(testActor, "doc-1", step.comment)
		require.NoError(t, err)
		require.False(t, result.Blocked)

		status, err := f.svc.ResolveStatus("doc-1")
		require.NoError(t, err)
		assert.Equal(t, step.want, status, "step %d", i)
	}

	history, err := f.svc.GetApprovalHistory("doc-1")
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestApproveRequiresPrincipal(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeContract)

	_, err := f.svc.Approve(dto.Principal{}, "doc-1", "")
	require.ErrorIs(t, err, domain.ErrAuthenticationRequired)

	history, err := f.svc.GetApprovalHistory("doc-1")
	require.NoError(t, err)
	assert.Empty(t, history, "nothing appended on an unauthenticated call")
}

func TestRejectRequiresComment(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeContract)

	_, err := f.svc.Reject(testActor, "doc-1", "   ")
	require.ErrorIs(t, err, domain.ErrCommentRequired)
}

func TestTwoApprovalsBothPersist(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-a", "proj-1", domain.DocumentTypeContract)

	var wg sync.WaitGroup
	for _, actor := range []dto.Principal{testActor, secondActor} {
		wg.Add(1)
		go func(p dto.Principal) {
			defer wg.Done()
			_, err := f.svc.Approve(p, "doc-a", "")
			assert.NoError(t, err)
		}(actor)
	}
	wg.Wait()

	history, err := f.svc.GetApprovalHistory("doc-a")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	status, err := f.svc.ResolveStatus("doc-a")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusApproved, status)
}

func TestApproveThenCancelLaterRecordWins(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-a", "proj-1", domain.DocumentTypeContract)

	_, err := f.svc.Approve(testActor, "doc-a", "")
	require.NoError(t, err)
	result, err := f.svc.Cancel(secondActor, "doc-a", "")
	require.NoError(t, err)
	require.False(t, result.Blocked)

	history, err := f.svc.GetApprovalHistory("doc-a")
	require.NoError(t, err)
	require.Len(t, history, 2)

	status, err := f.svc.ResolveStatus("doc-a")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, status)
	require.NotNil(t, history[1].Comment)
	assert.Equal(t, cancelDefaultComment, *history[1].Comment)
}

func TestCancelCommercialOfferBlockedWhileContractApproved(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("offer", "proj-1", domain.DocumentTypeCommercialOffer)
	f.addDoc("contract", "proj-1", domain.DocumentTypeContract)

	_, err := f.svc.Approve(testActor, "offer", "")
	require.NoError(t, err)
	_, err = f.svc.Approve(testActor, "contract", "")
	require.NoError(t, err)

	result, err := f.svc.Cancel(testActor, "offer", "")
	require.NoError(t, err)
	assert.True(t, result.Blocked)
	assert.NotEmpty(t, result.Reason)
	assert.Nil(t, result.Record)

	history, err := f.svc.GetApprovalHistory("offer")
	require.NoError(t, err)
	assert.Len(t, history, 1, "blocked cancel appends nothing")

	// Re-open the contract first, then the offer cancel goes through.
	_, err = f.svc.Cancel(testActor, "contract", "")
	require.NoError(t, err)

	result, err = f.svc.Cancel(testActor, "offer", "")
	require.NoError(t, err)
	assert.False(t, result.Blocked)

	status, err := f.svc.ResolveStatus("offer")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, status)
}

func TestCancelContractIsNeverGuarded(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("offer", "proj-1", domain.DocumentTypeCommercialOffer)
	f.addDoc("contract", "proj-1", domain.DocumentTypeContract)

	_, err := f.svc.Approve(testActor, "contract", "")
	require.NoError(t, err)

	result, err := f.svc.Cancel(testActor, "contract", "передоговориться")
	require.NoError(t, err)
	assert.False(t, result.Blocked)
}

func TestTransitionWritesOneAuditEntry(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeCommercialOffer)

	_, err := f.svc.Approve(testActor, "doc-1", "ок")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.audit.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	entry := f.audit.snapshot()[0]
	assert.Equal(t, domain.AuditActionDocumentApproved, entry.Action)
	assert.Equal(t, domain.AuditEntityDocument, entry.EntityType)
	assert.Equal(t, "doc-1", entry.EntityID)
	assert.Equal(t, testActor.ActorID, entry.ActorID)
	assert.JSONEq(t, `{
		"documentType": "commercial_offer",
		"previousStatus": "pending",
		"newStatus": "approved",
		"comment": "ок"
	}`, string(entry.Details))
}

func TestAuditFailureDoesNotPropagate(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeContract)
	f.audit.insertErr = errors.New("audit store down")

	for _, call := range []func(dto.Principal, string, string) (*dto.TransitionResult, error){
		f.svc.Approve, f.svc.Reject, f.svc.Cancel,
	} {
		_, err := call(testActor, "doc-1", "причина")
		require.NoError(t, err)
	}

	status, err := f.svc.ResolveStatus("doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, status, "cancel was last")

	history, err := f.svc.GetApprovalHistory("doc-1")
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestStatusListenerReceivesEvent(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-7", domain.DocumentTypeContract)

	var events []dto.DocumentStatusChangedEvent
	f.svc.OnStatusChange(func(event dto.DocumentStatusChangedEvent) {
		events = append(events, event)
	})

	_, err := f.svc.Approve(testActor, "doc-1", "")
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "doc-1", events[0].DocumentID)
	assert.Equal(t, "proj-7", events[0].ProjectID)
	assert.Equal(t, "approved", events[0].Status)
	assert.Equal(t, testActor.ActorID, events[0].ActorID)
}

func TestBlockedCancelFiresNoListener(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("offer", "proj-1", domain.DocumentTypeCommercialOffer)
	f.addDoc("contract", "proj-1", domain.DocumentTypeContract)
	_, err := f.svc.Approve(testActor, "contract", "")
	require.NoError(t, err)

	fired := 0
	f.svc.OnStatusChange(func(dto.DocumentStatusChangedEvent) { fired++ })

	result, err := f.svc.Cancel(testActor, "offer", "")
	require.NoError(t, err)
	require.True(t, result.Blocked)
	assert.Zero(t, fired)
}

func TestCommentsAreIndependentOfApprovals(t *testing.T) {
	f := newApprovalFixture(t)
	f.addDoc("doc-1", "proj-1", domain.DocumentTypeContract)

	_, err := f.svc.AddComment(testActor, "doc-1", "  нужно уточнить сроки  ")
	require.NoError(t, err)

	status, err := f.svc.GetApprovalStatus("doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, status.Status)
	require.Len(t, status.Comments, 1)
	assert.Equal(t, "нужно уточнить сроки", status.Comments[0].Comment)
	assert.Empty(t, status.ApprovalHistory)

	_, err = f.svc.AddComment(testActor, "doc-1", "   ")
	require.ErrorIs(t, err, domain.ErrCommentRequired)
}

func TestGetApprovalStatusUnknownDocument(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Approve(testActor, "missing", "")
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
