package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// itemTimeLayout is fixed width so that string comparisons in filter
// expressions follow chronological order.
const itemTimeLayout = "2006-01-02T15:04:05.000000000Z"

// dynamoAPI is the subset of *dynamodb.Client used by the repositories.
type dynamoAPI interface {
	dynamodb.ScanAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func formatItemTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(itemTimeLayout)
}

func parseItemTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func formatDecimal(d decimal.Decimal) string {
	return d.String()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// filterBuilder collects equality and range predicates for a Scan.
type filterBuilder struct {
	cond expression.ConditionBuilder
	set  bool
}

func (b *filterBuilder) and(c expression.ConditionBuilder) {
	if !b.set {
		b.cond, b.set = c, true
		return
	}
	b.cond = b.cond.And(c)
}

func (b *filterBuilder) equal(attr, value string) {
	if value == "" {
		return
	}
	b.and(expression.Name(attr).Equal(expression.Value(value)))
}

func (b *filterBuilder) between(attr string, from, to time.Time) {
	if !from.IsZero() {
		b.and(expression.Name(attr).GreaterThanEqual(expression.Value(formatItemTime(from))))
	}
	if !to.IsZero() {
		b.and(expression.Name(attr).LessThanEqual(expression.Value(formatItemTime(to))))
	}
}

// scanAll reads every page of a filtered Scan.
func scanAll[T any](ctx context.Context, ddb dynamoAPI, table string, f filterBuilder) ([]T, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	if f.set {
		expr, err := expression.NewBuilder().WithFilter(f.cond).Build()
		if err != nil {
			return nil, err
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	var out []T
	p := dynamodb.NewScanPaginator(ddb, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// getItem loads one item by id. It reports false when it does not exist.
func getItem(ctx context.Context, ddb dynamoAPI, table, id string, out any) (bool, error) {
	res, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(res.Item, out)
}

// putItem writes item. mustExist selects between create
// (attribute_not_exists) and full replace (attribute_exists). It reports
// false when the condition does not hold.
func putItem(ctx context.Context, ddb dynamoAPI, table string, item any, mustExist bool) (bool, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return false, err
	}
	cond := "attribute_not_exists(#id)"
	if mustExist {
		cond = "attribute_exists(#id)"
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String(cond),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if mustExist && isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// deleteItem removes id and reports whether something was deleted.
func deleteItem(ctx context.Context, ddb dynamoAPI, table, id string) (bool, error) {
	out, err := ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(table),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}
