package services

import (
	"github.com/qualiflow/document_service/internal/domain"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/objecttype"
	"github.com/qualiflow/document_service/internal/repository"
)

// ProgressService computes the per-project approval aggregate. It is a pure
// function of the document set, the selected-object set and the resolved
// statuses; nothing here is stored.
type ProgressService interface {
	GetProjectProgress(projectID string) (*dto.ProjectProgress, error)
}

type progressService struct {
	documents repository.DocumentRepository
	resolver  StatusResolver
}

// NewProgressService builds the aggregator. The resolver is typically a
// StatusCache; passing the approval service directly is equally correct,
// just uncached.
func NewProgressService(documents repository.DocumentRepository, resolver StatusResolver) ProgressService {
	return &progressService{documents: documents, resolver: resolver}
}

func (s *progressService) GetProjectProgress(projectID string) (*dto.ProjectProgress, error) {
	offer, err := s.documents.FindByProjectAndType(projectID, domain.DocumentTypeCommercialOffer)
	if err != nil {
		return nil, err
	}
	contract, err := s.documents.FindByProjectAndType(projectID, domain.DocumentTypeContract)
	if err != nil {
		return nil, err
	}
	protocols, err := s.documents.ListProtocolsByProject(projectID)
	if err != nil {
		return nil, err
	}
	objects, err := s.documents.ListSelectedObjects(projectID)
	if err != nil {
		return nil, err
	}

	progress := &dto.ProjectProgress{ProjectID: projectID}

	if offer != nil {
		progress.CommercialOfferApproved, err = s.approved(offer.ID)
		if err != nil {
			return nil, err
		}
	}
	if contract != nil {
		progress.ContractApproved, err = s.approved(contract.ID)
		if err != nil {
			return nil, err
		}
	}

	// One slot per selected object, not per uploaded protocol. An unmatched
	// slot stays outstanding and still counts toward the total.
	for _, obj := range objects {
		slot := dto.ProtocolSlot{
			ObjectID:   obj.ID,
			ObjectType: obj.Type,
			ObjectName: obj.Name,
		}
		if protocol := matchProtocol(protocols, obj); protocol != nil {
			slot.DocumentID = protocol.ProtocolDocumentID
			slot.Approved, err = s.approved(protocol.ProtocolDocumentID)
			if err != nil {
				return nil, err
			}
		}
		progress.ProtocolSlots = append(progress.ProtocolSlots, slot)
	}

	progress.TotalDocuments = 2 + len(objects)
	if progress.CommercialOfferApproved {
		progress.ApprovedCount++
	}
	if progress.ContractApproved {
		progress.ApprovedCount++
	}
	for _, slot := range progress.ProtocolSlots {
		if slot.Approved {
			progress.ApprovedCount++
		}
	}
	progress.ProgressPercentage = float64(progress.ApprovedCount) / float64(progress.TotalDocuments) * 100

	return progress, nil
}

func (s *progressService) approved(documentID string) (bool, error) {
	status, err := s.resolver.ResolveStatus(documentID)
	if err != nil {
		return false, err
	}
	return status == domain.ApprovalStatusApproved, nil
}

// matchProtocol associates a protocol with a selected object when their
// canonical object types agree. Raw-label comparison is kept as a fallback
// for rows entered before canonicalization existed.
func matchProtocol(protocols []domain.QualificationProtocol, obj domain.QualificationObject) *domain.QualificationProtocol {
	objKey := objecttype.ToCanonical(obj.Type)
	objKnown := objecttype.Known(obj.Type)
	for i := range protocols {
		p := &protocols[i]
		// An explicit object binding is exclusive in both directions: it wins
		// for its own object and is never reused for another slot.
		if p.QualificationObjectID != nil {
			if *p.QualificationObjectID == obj.ID {
				return p
			}
			continue
		}
		// Sanitized fallback keys collapse distinct unknown labels, so the
		// canonical comparison only applies inside the known vocabulary.
		// Unknown types still match below when the labels agree verbatim.
		if objKnown && objecttype.Known(p.ObjectType) && objecttype.ToCanonical(p.ObjectType) == objKey {
			return p
		}
		if p.ObjectType == obj.Type || objecttype.ToLabel(p.ObjectType) == obj.Type {
			return p
		}
	}
	return nil
}
