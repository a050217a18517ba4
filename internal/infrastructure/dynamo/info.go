package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cp-portal/internal/domain"
)

type InfoRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInfoRepo(client *dynamodb.Client, tableName string) *InfoRepo {
	return &InfoRepo{client: client, tableName: tableName}
}

func (r *InfoRepo) Put(ctx context.Context, e *domain.InfoEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal info entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InfoRepo) List(ctx context.Context) ([]domain.InfoEntry, error) {
	var entries []domain.InfoEntry
	if err := scanAll(ctx, r.client, r.tableName, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// scanAll reads every page of tableName into out, which must point to a slice.
func scanAll(ctx context.Context, client *dynamodb.Client, tableName string, out interface{}) error {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{TableName: aws.String(tableName)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}
