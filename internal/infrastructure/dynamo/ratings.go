package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cp-portal/internal/domain"
)

// RatingRepo stores rating history.
// PK: account_id, SK: recorded_at
type RatingRepo struct {
	client        *dynamodb.Client
	tableName     string
	accountsTable string
}

func NewRatingRepo(client *dynamodb.Client, tableName, accountsTable string) *RatingRepo {
	return &RatingRepo{client: client, tableName: tableName, accountsTable: accountsTable}
}

// ListByAccount returns the account's history, newest first.
func (r *RatingRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.RatingChange, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#id = :id"),
		ExpressionAttributeNames: map[string]string{"#id": fieldAccountID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: accountID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	history := []domain.RatingChange{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []domain.RatingChange
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		history = append(history, page...)
	}
	return history, nil
}

// Record appends c to the history and adds c.Change to the account's rating
// in one transaction. Returns domain.ErrNotFound if the account is missing.
func (r *RatingRepo) Record(ctx context.Context, c *domain.RatingChange) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal rating change: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item:      item,
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.accountsTable),
				Key:                 strKey(fieldAccountID, c.AccountID),
				UpdateExpression:    aws.String("ADD #r :delta SET #u = :now"),
				ConditionExpression: aws.String("attribute_exists(#id)"),
				ExpressionAttributeNames: map[string]string{
					"#r":  fieldRating,
					"#u":  fieldUpdatedAt,
					"#id": fieldAccountID,
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", c.Change)},
					":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
				},
			}},
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("record rating change: %w", domain.ErrNotFound)
	}
	return err
}
