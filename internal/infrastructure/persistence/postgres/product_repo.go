package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crediflow/origination/internal/domain/model"
	"github.com/crediflow/origination/internal/domain/valueobject"
)

// ProductRepo implements port.ProductRepository. Products are written by
// admin tooling outside this service, so only reads exist here.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepo creates a repository backed by PostgreSQL.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// FindByID retrieves one product.
func (r *ProductRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	query := `
		SELECT id, annual_rate, opening_commission_rate, min_amount,
		       max_amount, min_term_months, max_term_months,
		       allowed_frequencies, required_documents
		FROM products
		WHERE id = $1
	`
	var (
		productID                  string
		annualRate, commissionRate decimal.Decimal
		minAmount, maxAmount       decimal.Decimal
		minTerm, maxTerm           int
		frequencyStrs              []string
		requiredDocs               []string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&productID, &annualRate, &commissionRate, &minAmount, &maxAmount,
		&minTerm, &maxTerm, &frequencyStrs, &requiredDocs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, valueobject.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}

	frequencies := make([]valueobject.PaymentFrequency, len(frequencyStrs))
	for i, s := range frequencyStrs {
		f, err := valueobject.NewPaymentFrequency(s)
		if err != nil {
			return model.Product{}, fmt.Errorf("parse frequency: %w", err)
		}
		frequencies[i] = f
	}

	product, err := model.NewProduct(
		productID, annualRate, commissionRate, minAmount, maxAmount,
		minTerm, maxTerm, frequencies, requiredDocs,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("reconstruct product %s: %w", productID, err)
	}
	return product, nil
}
