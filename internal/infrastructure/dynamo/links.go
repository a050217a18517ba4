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

// LinkRepo stores external account links.
// PK: account_id, SK: platform
type LinkRepo struct {
	client        *dynamodb.Client
	tableName     string
	accountsTable string
}

func NewLinkRepo(client *dynamodb.Client, tableName, accountsTable string) *LinkRepo {
	return &LinkRepo{client: client, tableName: tableName, accountsTable: accountsTable}
}

// Put creates or overwrites the link for (account, platform).
func (r *LinkRepo) Put(ctx context.Context, l *domain.ExternalAccount) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal link: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LinkRepo) Get(ctx context.Context, accountID, platform string) (*domain.ExternalAccount, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            compositeKey(fieldAccountID, accountID, fieldPlatform, platform),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("link not found: %w", domain.ErrNotFound)
	}
	var l domain.ExternalAccount
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// CompleteVerification marks the link verified, clears its challenge, stores
// rating on it and mirrors rating onto the account, all in one transaction.
// The link must still hold the handle and challenge the caller checked: a
// re-initiation in between reports domain.ErrNoPendingRequest. Concurrent
// completions of the same challenge are last-write-wins.
func (r *LinkRepo) CompleteVerification(ctx context.Context, accountID, platform, handle, challenge string, rating int) error {
	now := time.Now().UTC()

	linkUE, err := buildUpdateExpr(map[string]interface{}{
		fieldVerified:  true,
		fieldRating:    rating,
		fieldUpdatedAt: now,
	})
	if err != nil {
		return err
	}
	linkUE = linkUE.remove(fieldChallenge).condition(
		map[string]string{"#h": fieldHandle, "#ch": fieldChallenge},
		map[string]types.AttributeValue{
			":handle":    &types.AttributeValueMemberS{Value: handle},
			":challenge": &types.AttributeValueMemberS{Value: challenge},
		},
	)

	accUE, err := buildUpdateExpr(map[string]interface{}{
		fieldRating:    rating,
		fieldUpdatedAt: now,
	})
	if err != nil {
		return err
	}
	accUE = accUE.condition(map[string]string{"#id": fieldAccountID}, nil)

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       compositeKey(fieldAccountID, accountID, fieldPlatform, platform),
				UpdateExpression:          aws.String(linkUE.Expr),
				ConditionExpression:       aws.String("#h = :handle AND #ch = :challenge"),
				ExpressionAttributeNames:  linkUE.Names,
				ExpressionAttributeValues: linkUE.Values,
			}},
			{Update: &types.Update{
				TableName:                 aws.String(r.accountsTable),
				Key:                       strKey(fieldAccountID, accountID),
				UpdateExpression:          aws.String(accUE.Expr),
				ConditionExpression:       aws.String("attribute_exists(#id)"),
				ExpressionAttributeNames:  accUE.Names,
				ExpressionAttributeValues: accUE.Values,
			}},
		},
	})
	switch {
	case transactItemFailed(err, 0):
		return fmt.Errorf("complete link verification: %w", domain.ErrNoPendingRequest)
	case isConditionFailed(err):
		return fmt.Errorf("complete link verification: %w", domain.ErrNotFound)
	}
	return err
}
