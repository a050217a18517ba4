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

// emailClaim reserves an email address for exactly one account.
type emailClaim struct {
	Email     string `dynamodbav:"email"`
	AccountID string `dynamodbav:"account_id"`
}

// AccountRepo provides typed DynamoDB operations for the accounts table.
// Email uniqueness is enforced by a companion table keyed by email.
type AccountRepo struct {
	client     *dynamodb.Client
	tableName  string
	emailTable string
}

func NewAccountRepo(client *dynamodb.Client, tableName, emailTable string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName, emailTable: emailTable}
}

// Create writes the account and its email claim in one transaction.
// Returns domain.ErrDuplicateKey when the email is already claimed.
func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	claim, err := attributevalue.MarshalMap(emailClaim{Email: a.Email, AccountID: a.AccountID})
	if err != nil {
		return fmt.Errorf("marshal email claim: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.emailTable),
				Item:                claim,
				ConditionExpression: aws.String("attribute_not_exists(#e)"),
				ExpressionAttributeNames: map[string]string{"#e": fieldEmail},
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": fieldAccountID},
			}},
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("email %s: %w", a.Email, domain.ErrDuplicateKey)
	}
	return err
}

func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldAccountID, accountID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail resolves the email claim and then loads the account.
// email must already be normalized.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.emailTable),
		Key:            strKey(fieldEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var claim emailClaim
	if err := attributevalue.UnmarshalMap(out.Item, &claim); err != nil {
		return nil, err
	}
	return r.Get(ctx, claim.AccountID)
}

// SetVerificationCode stores a fresh code on an unverified account.
// Returns domain.ErrAlreadyVerified if the account was verified in the meantime.
func (r *AccountRepo) SetVerificationCode(ctx context.Context, accountID, code string, expiry time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldVerificationCode: code,
		fieldCodeExpiry:       expiry.UTC(),
		fieldUpdatedAt:        time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	ue = ue.condition(
		map[string]string{"#id": fieldAccountID, "#ver": fieldVerified},
		map[string]types.AttributeValue{":f": &types.AttributeValueMemberBOOL{Value: false}},
	)
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldAccountID, accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #ver = :f"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("set verification code: %w", domain.ErrAlreadyVerified)
	}
	return err
}

// ConfirmVerification consumes code: verified becomes true and the code and
// expiry are removed, but only if the stored code still equals code.
// A lost race or a replaced code reports domain.ErrCodeMismatch.
func (r *AccountRepo) ConfirmVerification(ctx context.Context, accountID, code string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldVerified:  true,
		fieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	ue = ue.remove(fieldVerificationCode, fieldCodeExpiry).condition(
		map[string]string{"#ver": fieldVerified, "#code": fieldVerificationCode},
		map[string]types.AttributeValue{
			":f":    &types.AttributeValueMemberBOOL{Value: false},
			":code": &types.AttributeValueMemberS{Value: code},
		},
	)
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldAccountID, accountID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("#ver = :f AND #code = :code"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("confirm verification: %w", domain.ErrCodeMismatch)
	}
	return err
}

// Ping reports whether the accounts table is reachable and active.
func (r *AccountRepo) Ping(ctx context.Context) error {
	out, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return fmt.Errorf("describe %s: %w", r.tableName, err)
	}
	if out.Table == nil || out.Table.TableStatus != types.TableStatusActive {
		return fmt.Errorf("table %s is not active", r.tableName)
	}
	return nil
}
