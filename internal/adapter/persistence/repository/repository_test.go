package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"credito_tributario/internal/domain/entities"
)

// fakeDynamo keeps items in memory. Scan ignores filters and conditional
// Puts only understand attribute_exists / attribute_not_exists on id.
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue

	lastScan   *dynamodb.ScanInput
	lastUpdate *dynamodb.UpdateItemInput
	updateOut  map[string]types.AttributeValue
	updateErr  error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func itemID(av map[string]types.AttributeValue) string {
	if s, ok := av["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.lastScan = in
	out := &dynamodb.ScanOutput{}
	for _, it := range f.items {
		out.Items = append(out.Items, it)
	}
	return out, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[itemID(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	id := itemID(in.Item)
	_, exists := f.items[id]
	cond := ""
	if in.ConditionExpression != nil {
		cond = *in.ConditionExpression
	}
	if (strings.HasPrefix(cond, "attribute_exists") && !exists) ||
		(strings.HasPrefix(cond, "attribute_not_exists") && exists) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdate = in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	id := itemID(in.Key)
	old := f.items[id]
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{Attributes: old}, nil
}

func TestFormatItemTime_SortsChronologically(t *testing.T) {
	a := formatItemTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	b := formatItemTime(time.Date(2024, 3, 1, 10, 0, 0, 500, time.UTC))
	c := formatItemTime(time.Date(2024, 3, 1, 10, 0, 1, 0, time.UTC))
	if !(a < b && b < c) {
		t.Fatalf("expected %q < %q < %q", a, b, c)
	}
	if formatItemTime(time.Time{}) != "" {
		t.Fatalf("expected zero time to format as empty")
	}
	if got := parseItemTime(b); !got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 500, time.UTC)) {
		t.Fatalf("unexpected round trip: %v", got)
	}
}

func TestParseDecimal_InvalidIsZero(t *testing.T) {
	if !parseDecimal("abc").IsZero() {
		t.Fatalf("expected zero")
	}
	if !parseDecimal("1500.50").Equal(decimal.RequireFromString("1500.5")) {
		t.Fatalf("unexpected value")
	}
}

func TestClientDynamoRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewClientDynamoRepository(newFakeDynamo())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	c := entities.Client{
		ID:             "c1",
		Name:           "ACME",
		DocumentNumber: "12.345.678/0001-95",
		Type:           entities.ClientTypePrivate,
		Status:         entities.ClientStatusActive,
		Roles:          entities.Capabilities{CanViewOperations: true, IsAdmin: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := repo.Create(ctx, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, c); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}

	got, err := repo.GetByID(ctx, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "ACME" || !got.Roles.IsAdmin || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected client: %+v", got)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected empty client, got %+v err=%v", missing, err)
	}

	upd, err := repo.Update(ctx, entities.Client{ID: "ghost"})
	if err != nil || upd.ID != "" {
		t.Fatalf("expected empty update result for unknown id, got %+v err=%v", upd, err)
	}

	deleted, err := repo.Delete(ctx, "c1")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v err=%v", deleted, err)
	}
	deleted, _ = repo.Delete(ctx, "c1")
	if deleted {
		t.Fatalf("expected second delete to report false")
	}
}

func TestClientDynamoRepository_SearchOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewClientDynamoRepository(newFakeDynamo())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"Alpha", "Beta", "Gamma Alimentos"} {
		_, _ = repo.Create(ctx, entities.Client{
			ID:        name,
			Name:      name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	all, err := repo.Search(ctx, entities.ClientFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Gamma Alimentos" || all[2].Name != "Alpha" {
		t.Fatalf("unexpected order: %+v", all)
	}

	found, _ := repo.Search(ctx, entities.ClientFilter{Search: "al"})
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}
}

func TestContractDynamoRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewContractDynamoRepository(newFakeDynamo())
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	c := entities.Contract{
		ID:         "k1",
		ProposalID: "p1",
		ClientID:   "c1",
		Status:     entities.ContractStatusDraft,
		Value:      decimal.RequireFromString("12000"),
		StartDate:  start,
		EndDate:    start.AddDate(0, 12, 0),
		PaymentTerms: entities.PaymentTerms{
			SuccessFeePercent: decimal.RequireFromString("0.2"),
			MonthlyFee:        decimal.RequireFromString("1000"),
			Installments:      12,
		},
	}
	if _, err := repo.Create(ctx, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Value.Equal(c.Value) || !got.PaymentTerms.MonthlyFee.Equal(c.PaymentTerms.MonthlyFee) ||
		got.PaymentTerms.Installments != 12 || !got.EndDate.Equal(c.EndDate) {
		t.Fatalf("unexpected contract: %+v", got)
	}

	list, _ := repo.Search(ctx, entities.ContractFilter{Search: "P1"})
	if len(list) != 1 {
		t.Fatalf("expected search by proposal id to match")
	}
}

func TestProposalDynamoRepository_AppendStatus(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewProposalDynamoRepository(ddb)
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	stored, err := attributevalue.MarshalMap(proposalItem{
		ID:     "p1",
		Status: string(entities.ProposalStatusApproved),
		Timeline: []timelineItem{
			{ID: "t1", Status: "DRAFT"},
			{ID: "t2", Status: "APPROVED"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ddb.updateOut = stored

	entry := entities.TimelineEntry{ID: "t2", Status: entities.ProposalStatusApproved, UpdatedAt: now, UpdatedBy: "ana"}
	got, err := repo.AppendStatus(ctx, "p1", entities.ProposalStatusAnalysis, entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "p1" || len(got.Timeline) != 2 || got.Status != entities.ProposalStatusApproved {
		t.Fatalf("unexpected proposal: %+v", got)
	}

	in := ddb.lastUpdate
	if in == nil || in.ConditionExpression == nil || in.UpdateExpression == nil {
		t.Fatalf("expected conditional update")
	}
	if !strings.Contains(*in.UpdateExpression, "list_append") {
		t.Fatalf("expected list_append, got %q", *in.UpdateExpression)
	}
	var legacy bool
	for _, v := range in.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == "PENDING" {
			legacy = true
		}
	}
	if !legacy {
		t.Fatalf("expected legacy PENDING to be accepted as ANALYSIS")
	}
}

func TestProposalDynamoRepository_AppendStatusConflict(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.updateErr = &types.ConditionalCheckFailedException{}
	repo := NewProposalDynamoRepository(ddb)

	got, err := repo.AppendStatus(context.Background(), "p1", entities.ProposalStatusDraft, entities.TimelineEntry{Status: entities.ProposalStatusAnalysis})
	if err != nil {
		t.Fatalf("expected conflict to be reported as empty result, got %v", err)
	}
	if got.ID != "" {
		t.Fatalf("expected empty proposal, got %+v", got)
	}

	ddb.updateErr = errors.New("throttled")
	if _, err := repo.AppendStatus(context.Background(), "p1", entities.ProposalStatusDraft, entities.TimelineEntry{}); err == nil {
		t.Fatalf("expected backend error")
	}
}

func scanValues(in *dynamodb.ScanInput) map[string]bool {
	out := map[string]bool{}
	for _, v := range in.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			out[s.Value] = true
		}
	}
	return out
}

func TestProposalDynamoRepository_SearchStatusIncludesLegacyValue(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewProposalDynamoRepository(ddb)

	if _, err := repo.Search(ctx, entities.ProposalFilter{Status: entities.ProposalStatusAnalysis, ClientID: "c-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := ddb.lastScan
	if in == nil || in.FilterExpression == nil {
		t.Fatalf("expected a filtered scan")
	}
	if !strings.Contains(*in.FilterExpression, " IN (") {
		t.Fatalf("expected status IN filter, got %q", *in.FilterExpression)
	}
	values := scanValues(in)
	if !values["ANALYSIS"] || !values["PENDING"] || !values["c-1"] {
		t.Fatalf("expected ANALYSIS, PENDING and client id in filter values, got %v", values)
	}

	if _, err := repo.Search(ctx, entities.ProposalFilter{Status: entities.ProposalStatusDraft}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(*ddb.lastScan.FilterExpression, " IN (") {
		t.Fatalf("expected plain equality for a status without legacy value, got %q", *ddb.lastScan.FilterExpression)
	}
	if values := scanValues(ddb.lastScan); len(values) != 1 || !values["DRAFT"] {
		t.Fatalf("unexpected filter values %v", values)
	}

	if _, err := repo.Search(ctx, entities.ProposalFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ddb.lastScan.FilterExpression != nil {
		t.Fatalf("expected unfiltered scan, got %q", *ddb.lastScan.FilterExpression)
	}
}

func TestNormalizeProposalStatus(t *testing.T) {
	cases := map[string]entities.ProposalStatus{
		"PENDING":   entities.ProposalStatusAnalysis,
		"CONTRACT":  entities.ProposalStatusConverted,
		"approved":  entities.ProposalStatusApproved,
		"CANCELLED": entities.ProposalStatusCanceled,
	}
	for raw, want := range cases {
		if got := normalizeProposalStatus(raw); got != want {
			t.Fatalf("%s: expected %s, got %s", raw, want, got)
		}
	}
}
