package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/origination/internal/application/dto"
	"github.com/crediflow/origination/internal/application/usecase"
	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

func TestGetApplication_Execute(t *testing.T) {
	app := fixtureDraft(t)
	uc := usecase.NewGetApplicationUseCase(repoWith(app))

	resp, err := uc.Execute(context.Background(), dto.GetApplicationRequest{
		TenantID:      "tenant-001",
		ApplicationID: app.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, app.ID(), resp.ID)
	assert.Equal(t, "person-001", resp.PersonRef)

	_, err = uc.Execute(context.Background(), dto.GetApplicationRequest{
		TenantID:      "other-tenant",
		ApplicationID: app.ID(),
	})
	require.ErrorIs(t, err, valueobject.ErrApplicationNotFound)
}

func TestListApplications_Execute(t *testing.T) {
	first := fixtureDraft(t)
	second := fixtureDraft(t)
	repo := &listMockRepository{apps: []model.Application{first, second}}
	uc := usecase.NewListApplicationsUseCase(repo)

	resp, err := uc.Execute(context.Background(), dto.ListApplicationsRequest{
		TenantID:     "tenant-001",
		ApplicantRef: "person-001",
	})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, first.ID(), resp[0].ID)
	assert.Equal(t, second.ID(), resp[1].ID)
}

type listMockRepository struct {
	mockApplicationRepository
	apps []model.Application
}

func (m *listMockRepository) FindByApplicantRef(_ context.Context, tenantID, applicantRef string) ([]model.Application, error) {
	var out []model.Application
	for _, app := range m.apps {
		if app.TenantID() == tenantID && app.ApplicantRef() == applicantRef {
			out = append(out, app)
		}
	}
	return out, nil
}

func TestGetStatusHistory_Execute(t *testing.T) {
	app := fixtureDraft(t)
	appRepo := repoWith(app)
	appRepo.historyFunc = func(_ context.Context, tenantID, applicationID string) ([]model.StatusHistoryEntry, error) {
		return []model.StatusHistoryEntry{
			{
				ApplicationID: applicationID,
				ToStatus:      valueobject.StatusDraft,
				ChangedBy:     "person-001",
				ChangedByType: valueobject.ActorApplicant,
				Notes:         "application created",
				CreatedAt:     frozenNow,
			},
			{
				ApplicationID: applicationID,
				FromStatus:    valueobject.StatusDraft,
				ToStatus:      valueobject.StatusSubmitted,
				ChangedBy:     "person-001",
				ChangedByType: valueobject.ActorApplicant,
				CreatedAt:     frozenNow.Add(time.Hour),
			},
		}, nil
	}
	uc := usecase.NewGetStatusHistoryUseCase(appRepo)

	entries, err := uc.Execute(context.Background(), dto.GetApplicationRequest{
		TenantID:      "tenant-001",
		ApplicationID: app.ID(),
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].FromStatus)
	assert.Equal(t, "DRAFT", entries[0].ToStatus)
	assert.Equal(t, "DRAFT", entries[1].FromStatus)
	assert.Equal(t, "SUBMITTED", entries[1].ToStatus)

	// The lookup doubles as the tenancy gate.
	_, err = uc.Execute(context.Background(), dto.GetApplicationRequest{
		TenantID:      "other-tenant",
		ApplicationID: app.ID(),
	})
	require.ErrorIs(t, err, valueobject.ErrApplicationNotFound)
}
