package service

import (
	"fmt"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// MinAcceptedReferences is the number of accepted references required before
// an application may be submitted.
const MinAcceptedReferences = 2

// CompletenessSignals carries the externally supplied facts the submission
// check runs against. The document and reference collaborators own the
// underlying data; this service only judges completeness.
type CompletenessSignals struct {
	IdentityPayloadPresent bool
	UploadedDocumentTypes  []string
	AcceptedReferences     int
}

// SubmissionValidator gates the DRAFT -> SUBMITTED transition. The check is
// all-or-nothing: every unmet condition is reported in a single aggregated
// error and no partial submission is permitted.
type SubmissionValidator struct{}

// NewSubmissionValidator returns a new validator instance.
func NewSubmissionValidator() *SubmissionValidator {
	return &SubmissionValidator{}
}

// Validate returns nil when the application is complete, or an
// IncompleteApplicationError naming every missing item.
func (v *SubmissionValidator) Validate(
	app model.Application,
	product model.Product,
	signals CompletenessSignals,
) error {
	var missing []string

	if !signals.IdentityPayloadPresent {
		if app.CompanyRef() != "" {
			missing = append(missing, "company identity data is missing")
		} else {
			missing = append(missing, "applicant identity data is missing")
		}
	}
	if app.Purpose() == "" {
		missing = append(missing, "loan purpose is required")
	}

	uploaded := make(map[string]bool, len(signals.UploadedDocumentTypes))
	for _, docType := range signals.UploadedDocumentTypes {
		uploaded[docType] = true
	}
	for _, required := range product.RequiredDocuments() {
		if !uploaded[required] {
			missing = append(missing, fmt.Sprintf("required document %q not uploaded", required))
		}
	}

	if signals.AcceptedReferences < MinAcceptedReferences {
		missing = append(missing, fmt.Sprintf(
			"references: %d accepted, %d required", signals.AcceptedReferences, MinAcceptedReferences))
	}

	if len(missing) > 0 {
		return &valueobject.IncompleteApplicationError{Missing: missing}
	}
	return nil
}

// Checklist derives the verification checklist recorded on the application
// at submission from the same signals the validation ran against.
func (v *SubmissionValidator) Checklist(
	app model.Application,
	product model.Product,
	signals CompletenessSignals,
) model.VerificationChecklist {
	uploaded := make(map[string]bool, len(signals.UploadedDocumentTypes))
	for _, docType := range signals.UploadedDocumentTypes {
		uploaded[docType] = true
	}
	docsComplete := true
	for _, required := range product.RequiredDocuments() {
		if !uploaded[required] {
			docsComplete = false
			break
		}
	}

	return model.VerificationChecklist{
		IdentityVerified:   signals.IdentityPayloadPresent,
		PurposeProvided:    app.Purpose() != "",
		DocumentsComplete:  docsComplete,
		AcceptedReferences: signals.AcceptedReferences,
	}
}
