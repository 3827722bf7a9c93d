package repository

import (
	"context"
	"sort"

	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProposalsTableName = "proposals"

type timelineItem struct {
	ID        string `dynamodbav:"id"`
	Status    string `dynamodbav:"status"`
	UpdatedAt string `dynamodbav:"updated_at"`
	UpdatedBy string `dynamodbav:"updated_by"`
	Comments  string `dynamodbav:"comments"`
}

type proposalDetailsItem struct {
	EstimatedValue     string `dynamodbav:"estimated_value"`
	ServiceDescription string `dynamodbav:"service_description"`
	PeriodStart        string `dynamodbav:"period_start"`
	PeriodEnd          string `dynamodbav:"period_end"`
	Notes              string `dynamodbav:"notes"`
}

type proposalItem struct {
	ID                   string              `dynamodbav:"id"`
	ClientID             string              `dynamodbav:"client_id"`
	ClientName           string              `dynamodbav:"client_name"`
	ClientDocumentNumber string              `dynamodbav:"client_document_number"`
	Title                string              `dynamodbav:"title"`
	Description          string              `dynamodbav:"description"`
	TotalValue           string              `dynamodbav:"total_value"`
	ValidUntil           string              `dynamodbav:"valid_until"`
	Details              proposalDetailsItem `dynamodbav:"details"`
	Status               string              `dynamodbav:"status"`
	Timeline             []timelineItem      `dynamodbav:"timeline"`
	CreatedBy            string              `dynamodbav:"created_by"`
	CreatedAt            string              `dynamodbav:"created_at"`
	UpdatedAt            string              `dynamodbav:"updated_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The timeline is stored as a list attribute and only grows through
// list_append, guarded by the status the caller read.
type ProposalDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb dynamoAPI) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROPOSALS_TABLE", defaultProposalsTableName),
	}
}

// TableName is the table the repository reads and writes.
func (r *ProposalDynamoRepository) TableName() string {
	return r.tableName
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	if _, err := putItem(ctx, r.ddb, r.tableName, toProposalItem(p), false); err != nil {
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	var it proposalItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func (r *ProposalDynamoRepository) Search(ctx context.Context, f entities.ProposalFilter) ([]entities.Proposal, error) {
	var fb filterBuilder
	if f.Status != "" {
		fb.and(proposalStatusCondition(f.Status))
	}
	fb.equal("client_id", f.ClientID)
	fb.between("created_at", f.From, f.To)

	items, err := scanAll[proposalItem](ctx, r.ddb, r.tableName, fb)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Proposal, 0, len(items))
	for _, it := range items {
		p := fromProposalItem(it)
		if !entities.MatchesSearch(f.Search, p.Title, p.Description, p.Client.Name, p.Client.DocumentNumber) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProposalDynamoRepository) Update(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	it := toProposalItem(p)
	upd := expression.
		Set(expression.Name("title"), expression.Value(it.Title)).
		Set(expression.Name("description"), expression.Value(it.Description)).
		Set(expression.Name("total_value"), expression.Value(it.TotalValue)).
		Set(expression.Name("valid_until"), expression.Value(it.ValidUntil)).
		Set(expression.Name("details"), expression.Value(it.Details)).
		Set(expression.Name("updated_at"), expression.Value(it.UpdatedAt))
	cond := expression.AttributeExists(expression.Name("id"))

	return r.update(ctx, p.ID, expression.NewBuilder().WithUpdate(upd).WithCondition(cond))
}

func (r *ProposalDynamoRepository) AppendStatus(
	ctx context.Context,
	id string,
	expected entities.ProposalStatus,
	entry entities.TimelineEntry,
) (entities.Proposal, error) {
	upd := expression.
		Set(expression.Name("timeline"), expression.ListAppend(
			expression.Name("timeline"),
			expression.Value([]timelineItem{toTimelineItem(entry)}),
		)).
		Set(expression.Name("status"), expression.Value(string(entry.Status))).
		Set(expression.Name("updated_at"), expression.Value(formatItemTime(entry.UpdatedAt)))
	cond := expression.AttributeExists(expression.Name("id")).And(proposalStatusCondition(expected))

	return r.update(ctx, id, expression.NewBuilder().WithUpdate(upd).WithCondition(cond))
}

func (r *ProposalDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, id)
}

func (r *ProposalDynamoRepository) update(ctx context.Context, id string, b expression.Builder) (entities.Proposal, error) {
	expr, err := b.Build()
	if err != nil {
		return entities.Proposal{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       expr.Condition(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Proposal{}, nil
		}
		return entities.Proposal{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Proposal{}, nil
	}
	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func toTimelineItem(e entities.TimelineEntry) timelineItem {
	return timelineItem{
		ID:        e.ID,
		Status:    string(e.Status),
		UpdatedAt: formatItemTime(e.UpdatedAt),
		UpdatedBy: e.UpdatedBy,
		Comments:  e.Comments,
	}
}

func toProposalItem(p entities.Proposal) proposalItem {
	timeline := make([]timelineItem, 0, len(p.Timeline))
	for _, e := range p.Timeline {
		timeline = append(timeline, toTimelineItem(e))
	}
	return proposalItem{
		ID:                   p.ID,
		ClientID:             p.ClientID,
		ClientName:           p.Client.Name,
		ClientDocumentNumber: p.Client.DocumentNumber,
		Title:                p.Title,
		Description:          p.Description,
		TotalValue:           formatDecimal(p.TotalValue),
		ValidUntil:           formatItemTime(p.ValidUntil),
		Details: proposalDetailsItem{
			EstimatedValue:     formatDecimal(p.Details.EstimatedValue),
			ServiceDescription: p.Details.ServiceDescription,
			PeriodStart:        formatItemTime(p.Details.PeriodStart),
			PeriodEnd:          formatItemTime(p.Details.PeriodEnd),
			Notes:              p.Details.Notes,
		},
		Status:    string(p.Status),
		Timeline:  timeline,
		CreatedBy: p.CreatedBy,
		CreatedAt: formatItemTime(p.CreatedAt),
		UpdatedAt: formatItemTime(p.UpdatedAt),
	}
}

func fromProposalItem(it proposalItem) entities.Proposal {
	timeline := make([]entities.TimelineEntry, 0, len(it.Timeline))
	for _, t := range it.Timeline {
		timeline = append(timeline, entities.TimelineEntry{
			ID:        t.ID,
			Status:    normalizeProposalStatus(t.Status),
			UpdatedAt: parseItemTime(t.UpdatedAt),
			UpdatedBy: t.UpdatedBy,
			Comments:  t.Comments,
		})
	}
	return entities.Proposal{
		ID:       it.ID,
		ClientID: it.ClientID,
		Client: entities.ClientSnapshot{
			ID:             it.ClientID,
			Name:           it.ClientName,
			DocumentNumber: it.ClientDocumentNumber,
		},
		Title:       it.Title,
		Description: it.Description,
		TotalValue:  parseDecimal(it.TotalValue),
		ValidUntil:  parseItemTime(it.ValidUntil),
		Details: entities.ProposalDetails{
			EstimatedValue:     parseDecimal(it.Details.EstimatedValue),
			ServiceDescription: it.Details.ServiceDescription,
			PeriodStart:        parseItemTime(it.Details.PeriodStart),
			PeriodEnd:          parseItemTime(it.Details.PeriodEnd),
			Notes:              it.Details.Notes,
		},
		Status:    normalizeProposalStatus(it.Status),
		Timeline:  timeline,
		CreatedBy: it.CreatedBy,
		CreatedAt: parseItemTime(it.CreatedAt),
		UpdatedAt: parseItemTime(it.UpdatedAt),
	}
}

// proposalStatusCondition matches s and the legacy value items may still
// store for it.
func proposalStatusCondition(s entities.ProposalStatus) expression.ConditionBuilder {
	if legacy, ok := legacyProposalStatus[s]; ok {
		return expression.Name("status").In(expression.Value(string(s)), expression.Value(legacy))
	}
	return expression.Name("status").Equal(expression.Value(string(s)))
}

// legacyProposalStatus holds the value older items may still store for a
// canonical status.
var legacyProposalStatus = map[entities.ProposalStatus]string{
	entities.ProposalStatusAnalysis:  "PENDING",
	entities.ProposalStatusConverted: "CONTRACT",
	entities.ProposalStatusCanceled:  "CANCELLED",
}

// normalizeProposalStatus maps legacy values (PENDING, CONTRACT) still
// present in older items.
func normalizeProposalStatus(raw string) entities.ProposalStatus {
	if s, ok := entities.ParseProposalStatus(raw); ok {
		return s
	}
	return entities.ProposalStatus(raw)
}

