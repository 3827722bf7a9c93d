package repository

import (
	"context"
	"sort"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"
)

const defaultContractsTableName = "contracts"

type paymentTermsItem struct {
	SuccessFeePercent string `dynamodbav:"success_fee_percent"`
	UpfrontPercent    string `dynamodbav:"upfront_percent"`
	MonthlyFee        string `dynamodbav:"monthly_fee"`
	Installments      int    `dynamodbav:"installments"`
}

type contractItem struct {
	ID           string           `dynamodbav:"id"`
	ProposalID   string           `dynamodbav:"proposal_id"`
	ClientID     string           `dynamodbav:"client_id"`
	Status       string           `dynamodbav:"status"`
	Value        string           `dynamodbav:"value"`
	StartDate    string           `dynamodbav:"start_date"`
	EndDate      string           `dynamodbav:"end_date"`
	PaymentTerms paymentTermsItem `dynamodbav:"payment_terms"`
	CreatedAt    string           `dynamodbav:"created_at"`
	UpdatedAt    string           `dynamodbav:"updated_at"`
}

// ContractDynamoRepository persists Contract entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type ContractDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IContractRepository = (*ContractDynamoRepository)(nil)

func NewContractDynamoRepository(ddb dynamoAPI) *ContractDynamoRepository {
	return &ContractDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CONTRACTS_TABLE", defaultContractsTableName),
	}
}

// TableName is the table the repository reads and writes.
func (r *ContractDynamoRepository) TableName() string {
	return r.tableName
}

func (r *ContractDynamoRepository) Create(ctx context.Context, c entities.Contract) (entities.Contract, error) {
	if _, err := putItem(ctx, r.ddb, r.tableName, toContractItem(c), false); err != nil {
		return entities.Contract{}, err
	}
	return c, nil
}

func (r *ContractDynamoRepository) GetByID(ctx context.Context, id string) (entities.Contract, error) {
	var it contractItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Contract{}, err
	}
	return fromContractItem(it), nil
}

func (r *ContractDynamoRepository) Search(ctx context.Context, f entities.ContractFilter) ([]entities.Contract, error) {
	var fb filterBuilder
	fb.equal("status", string(f.Status))
	fb.equal("client_id", f.ClientID)
	fb.equal("proposal_id", f.ProposalID)
	fb.between("created_at", f.From, f.To)

	items, err := scanAll[contractItem](ctx, r.ddb, r.tableName, fb)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Contract, 0, len(items))
	for _, it := range items {
		c := fromContractItem(it)
		if !entities.MatchesSearch(f.Search, c.ID, c.ProposalID, c.ClientID) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ContractDynamoRepository) Update(ctx context.Context, c entities.Contract) (entities.Contract, error) {
	ok, err := putItem(ctx, r.ddb, r.tableName, toContractItem(c), true)
	if err != nil || !ok {
		return entities.Contract{}, err
	}
	return c, nil
}

func (r *ContractDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, id)
}

func toContractItem(c entities.Contract) contractItem {
	return contractItem{
		ID:         c.ID,
		ProposalID: c.ProposalID,
		ClientID:   c.ClientID,
		Status:     string(c.Status),
		Value:      formatDecimal(c.Value),
		StartDate:  formatItemTime(c.StartDate),
		EndDate:    formatItemTime(c.EndDate),
		PaymentTerms: paymentTermsItem{
			SuccessFeePercent: formatDecimal(c.PaymentTerms.SuccessFeePercent),
			UpfrontPercent:    formatDecimal(c.PaymentTerms.UpfrontPercent),
			MonthlyFee:        formatDecimal(c.PaymentTerms.MonthlyFee),
			Installments:      c.PaymentTerms.Installments,
		},
		CreatedAt: formatItemTime(c.CreatedAt),
		UpdatedAt: formatItemTime(c.UpdatedAt),
	}
}

func fromContractItem(it contractItem) entities.Contract {
	return entities.Contract{
		ID:         it.ID,
		ProposalID: it.ProposalID,
		ClientID:   it.ClientID,
		Status:     entities.ContractStatus(it.Status),
		Value:      parseDecimal(it.Value),
		StartDate:  parseItemTime(it.StartDate),
		EndDate:    parseItemTime(it.EndDate),
		PaymentTerms: entities.PaymentTerms{
			SuccessFeePercent: parseDecimal(it.PaymentTerms.SuccessFeePercent),
			UpfrontPercent:    parseDecimal(it.PaymentTerms.UpfrontPercent),
			MonthlyFee:        parseDecimal(it.PaymentTerms.MonthlyFee),
			Installments:      it.PaymentTerms.Installments,
		},
		CreatedAt: parseItemTime(it.CreatedAt),
		UpdatedAt: parseItemTime(it.UpdatedAt),
	}
}
