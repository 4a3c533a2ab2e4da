package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
	pkgpostgres "github.com/crediflow/origination/pkg/postgres"
)

// ApplicationRepo implements port.ApplicationRepository.
//
// Save writes the aggregate row and its pending status-history entries in
// one transaction; an optimistic version check guards the upsert. Structured
// parts of the aggregate (snapshot, counter offer, checklist, approved
// terms, external sync) live in JSONB columns.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewApplicationRepo creates a repository backed by PostgreSQL.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationColumns = `
	id, tenant_id, person_ref, company_ref, product_id, purpose,
	requested_amount, requested_term_months, payment_frequency,
	interest_rate, commission_rate, monthly_payment, total_interest,
	total_amount, cat, status, submitted_at, decision_at, expires_at,
	assigned_to, assigned_at, assigned_by, decision, approved_terms,
	rejection_reason, counter_offer, snapshot, checklist, risk_level,
	dti, external_sync, version, created_at, updated_at`

// Save upserts the application and appends its pending history entries.
// A stale version returns valueobject.ErrConcurrentModification and nothing
// is written.
func (r *ApplicationRepo) Save(ctx context.Context, app model.Application) error {
	approvedTerms, err := marshalNullable(app.ApprovedTerms(), app.ApprovedTerms() == nil)
	if err != nil {
		return fmt.Errorf("marshal approved terms: %w", err)
	}
	counterOffer, err := marshalNullable(app.CounterOffer(), app.CounterOffer().IsZero())
	if err != nil {
		return fmt.Errorf("marshal counter offer: %w", err)
	}
	snapshot, err := marshalNullable(app.Snapshot(), app.Snapshot().IsZero())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	checklist, err := json.Marshal(app.Checklist())
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	externalSync, err := marshalNullable(app.ExternalSync(), app.ExternalSync().ExternalID == "")
	if err != nil {
		return fmt.Errorf("marshal external sync: %w", err)
	}

	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
		        $18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,
		        $33,$34)
		ON CONFLICT (id) DO UPDATE SET
			purpose               = EXCLUDED.purpose,
			requested_amount      = EXCLUDED.requested_amount,
			requested_term_months = EXCLUDED.requested_term_months,
			payment_frequency     = EXCLUDED.payment_frequency,
			interest_rate         = EXCLUDED.interest_rate,
			commission_rate       = EXCLUDED.commission_rate,
			monthly_payment       = EXCLUDED.monthly_payment,
			total_interest        = EXCLUDED.total_interest,
			total_amount          = EXCLUDED.total_amount,
			cat                   = EXCLUDED.cat,
			status                = EXCLUDED.status,
			submitted_at          = EXCLUDED.submitted_at,
			decision_at           = EXCLUDED.decision_at,
			expires_at            = EXCLUDED.expires_at,
			assigned_to           = EXCLUDED.assigned_to,
			assigned_at           = EXCLUDED.assigned_at,
			assigned_by           = EXCLUDED.assigned_by,
			decision              = EXCLUDED.decision,
			approved_terms        = EXCLUDED.approved_terms,
			rejection_reason      = EXCLUDED.rejection_reason,
			counter_offer         = EXCLUDED.counter_offer,
			snapshot              = EXCLUDED.snapshot,
			checklist             = EXCLUDED.checklist,
			risk_level            = EXCLUDED.risk_level,
			dti                   = EXCLUDED.dti,
			external_sync         = EXCLUDED.external_sync,
			version               = applications.version + 1,
			updated_at            = EXCLUDED.updated_at
		WHERE applications.version = $32
	`

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			app.ID(), app.TenantID(),
			nullString(app.PersonRef()), nullString(app.CompanyRef()),
			app.ProductID(), app.Purpose(),
			app.RequestedAmount(), app.RequestedTermMonths(), app.PaymentFrequency().String(),
			app.InterestRate(), app.CommissionRate(), app.MonthlyPayment(), app.TotalInterest(),
			app.TotalAmount(), app.CAT(), app.Status().String(),
			nullTime(app.SubmittedAt()), nullTime(app.DecisionAt()), nullTime(app.ExpiresAt()),
			nullString(app.AssignedTo()), nullTime(app.AssignedAt()), nullString(app.AssignedBy()),
			nullString(app.Decision().String()), approvedTerms,
			nullString(app.RejectionReason()), counterOffer, snapshot, checklist,
			nullString(app.RiskLevel().String()),
			app.DebtToIncome(), externalSync, app.Version(),
			app.CreatedAt(), app.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("save application: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return valueobject.ErrConcurrentModification
		}
		return appendHistory(ctx, tx, app.TenantID(), app.PendingHistory())
	})
}

// FindByID retrieves a single application within the tenant.
func (r *ApplicationRepo) FindByID(ctx context.Context, tenantID, id string) (model.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE tenant_id = $1 AND id = $2`
	app, err := scanApplication(r.pool.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Application{}, valueobject.ErrApplicationNotFound
	}
	return app, err
}

// FindByApplicantRef retrieves all applications of one applicant, newest
// first.
func (r *ApplicationRepo) FindByApplicantRef(ctx context.Context, tenantID, applicantRef string) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE tenant_id = $1 AND (person_ref = $2 OR company_ref = $2)
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, tenantID, applicantRef)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var result []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// History returns the status-history ledger oldest first.
func (r *ApplicationRepo) History(ctx context.Context, tenantID, applicationID string) ([]model.StatusHistoryEntry, error) {
	query := `
		SELECT application_id, from_status, to_status, changed_by,
		       changed_by_type, notes, created_at
		FROM application_status_history
		WHERE tenant_id = $1 AND application_id = $2
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.pool.Query(ctx, query, tenantID, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	defer rows.Close()

	var result []model.StatusHistoryEntry
	for rows.Next() {
		var (
			entry      model.StatusHistoryEntry
			fromStatus *string
			changedBy  *string
			notes      *string
			actorStr   string
			toStr      string
		)
		if err := rows.Scan(&entry.ApplicationID, &fromStatus, &toStr,
			&changedBy, &actorStr, &notes, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		if fromStatus != nil {
			from, err := valueobject.NewApplicationStatus(*fromStatus)
			if err != nil {
				return nil, fmt.Errorf("parse from status: %w", err)
			}
			entry.FromStatus = from
		}
		to, err := valueobject.NewApplicationStatus(toStr)
		if err != nil {
			return nil, fmt.Errorf("parse to status: %w", err)
		}
		entry.ToStatus = to
		actor, err := valueobject.NewActorType(actorStr)
		if err != nil {
			return nil, fmt.Errorf("parse actor type: %w", err)
		}
		entry.ChangedByType = actor
		entry.ChangedBy = deref(changedBy)
		entry.Notes = deref(notes)
		result = append(result, entry)
	}
	return result, rows.Err()
}

func appendHistory(ctx context.Context, q pkgpostgres.Querier, tenantID string, entries []model.StatusHistoryEntry) error {
	query := `
		INSERT INTO application_status_history (
			id, tenant_id, application_id, from_status, to_status,
			changed_by, changed_by_type, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	for _, e := range entries {
		var fromStatus any
		if !e.FromStatus.IsZero() {
			fromStatus = e.FromStatus.String()
		}
		if _, err := q.Exec(ctx, query,
			uuid.New().String(), tenantID, e.ApplicationID, fromStatus,
			e.ToStatus.String(), nullString(e.ChangedBy),
			e.ChangedByType.String(), nullString(e.Notes), e.CreatedAt,
		); err != nil {
			return fmt.Errorf("append status history: %w", err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanApplication(s scannable) (model.Application, error) {
	var (
		id, tenantID, productID, purpose                 string
		personRef, companyRef                            *string
		requestedAmount                                  decimal.Decimal
		requestedTermMonths                              int
		frequencyStr, statusStr                          string
		interestRate, commissionRate                     decimal.Decimal
		monthlyPayment, totalInterest, totalAmount, cat  decimal.Decimal
		submittedAt, decisionAt, expiresAt, assignedAt   *time.Time
		assignedTo, assignedBy                           *string
		decisionStr, rejectionReason, riskStr            *string
		approvedTermsRaw, offerRaw, snapshotRaw, syncRaw []byte
		checklistRaw                                     []byte
		dti                                              decimal.Decimal
		version                                          int
		createdAt, updatedAt                             time.Time
	)

	err := s.Scan(
		&id, &tenantID, &personRef, &companyRef, &productID, &purpose,
		&requestedAmount, &requestedTermMonths, &frequencyStr,
		&interestRate, &commissionRate, &monthlyPayment, &totalInterest,
		&totalAmount, &cat, &statusStr, &submittedAt, &decisionAt, &expiresAt,
		&assignedTo, &assignedAt, &assignedBy, &decisionStr, &approvedTermsRaw,
		&rejectionReason, &offerRaw, &snapshotRaw, &checklistRaw, &riskStr,
		&dti, &syncRaw, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Application{}, fmt.Errorf("scan application: %w", err)
	}

	frequency, err := valueobject.NewPaymentFrequency(frequencyStr)
	if err != nil {
		return model.Application{}, fmt.Errorf("parse frequency: %w", err)
	}
	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.Application{}, fmt.Errorf("parse status: %w", err)
	}
	var decision valueobject.Decision
	if decisionStr != nil {
		if decision, err = valueobject.NewDecision(*decisionStr); err != nil {
			return model.Application{}, fmt.Errorf("parse decision: %w", err)
		}
	}
	var riskLevel valueobject.RiskLevel
	if riskStr != nil {
		if riskLevel, err = valueobject.NewRiskLevel(*riskStr); err != nil {
			return model.Application{}, fmt.Errorf("parse risk level: %w", err)
		}
	}

	var approvedTerms *model.ApprovedTerms
	if len(approvedTermsRaw) > 0 {
		approvedTerms = &model.ApprovedTerms{}
		if err := json.Unmarshal(approvedTermsRaw, approvedTerms); err != nil {
			return model.Application{}, fmt.Errorf("unmarshal approved terms: %w", err)
		}
	}
	var offer model.CounterOffer
	if len(offerRaw) > 0 {
		if err := json.Unmarshal(offerRaw, &offer); err != nil {
			return model.Application{}, fmt.Errorf("unmarshal counter offer: %w", err)
		}
	}
	var snapshot model.ApplicantSnapshot
	if len(snapshotRaw) > 0 {
		if err := json.Unmarshal(snapshotRaw, &snapshot); err != nil {
			return model.Application{}, fmt.Errorf("unmarshal snapshot: %w", err)
		}
	}
	var checklist model.VerificationChecklist
	if len(checklistRaw) > 0 {
		if err := json.Unmarshal(checklistRaw, &checklist); err != nil {
			return model.Application{}, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}
	var externalSync model.ExternalSync
	if len(syncRaw) > 0 {
		if err := json.Unmarshal(syncRaw, &externalSync); err != nil {
			return model.Application{}, fmt.Errorf("unmarshal external sync: %w", err)
		}
	}

	return model.ReconstructApplication(
		id, tenantID, deref(personRef), deref(companyRef), productID, purpose,
		requestedAmount, requestedTermMonths, frequency,
		interestRate, commissionRate,
		monthlyPayment, totalInterest, totalAmount, cat,
		status,
		derefTime(submittedAt), derefTime(decisionAt), derefTime(expiresAt),
		deref(assignedTo), derefTime(assignedAt), deref(assignedBy),
		decision, approvedTerms, deref(rejectionReason),
		offer, snapshot, checklist, riskLevel, dti, externalSync,
		version, createdAt, updatedAt,
	), nil
}

func marshalNullable(v any, isZero bool) ([]byte, error) {
	if isZero {
		return nil, nil
	}
	return json.Marshal(v)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
