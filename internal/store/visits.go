// Package store persists per-visit analysis bundles. It belongs to the
// caller: the analysis engine itself never reads or writes visit records.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/clinsight/internal/clients"
	"github.com/spacesedan/clinsight/internal/models"
)

const VISITS_TABLE_NAME = "Visits"

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// PutVisit stores one visit record with its comparison and consensus.
func PutVisit(ctx context.Context, visit models.VisitRecord) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	item, err := attributevalue.MarshalMap(visit)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal visit record: %w", err)
	}

	_, err = dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(VISITS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store visit record: %w", err)
	}

	slog.Info("[DynamoDB] Successfully stored visit record",
		slog.String("visit_id", visit.VisitID))
	return nil
}

// GetVisit fetches one visit record by id; ok is false when no record exists.
func GetVisit(ctx context.Context, visitID string) (models.VisitRecord, bool, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	out, err := dbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(VISITS_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"visit_id": &types.AttributeValueMemberS{Value: visitID},
		},
	})
	if err != nil {
		return models.VisitRecord{}, false, fmt.Errorf("[DynamoDB] Failed to fetch visit record: %w", err)
	}
	if out.Item == nil {
		return models.VisitRecord{}, false, nil
	}

	var visit models.VisitRecord
	if err := attributevalue.UnmarshalMap(out.Item, &visit); err != nil {
		return models.VisitRecord{}, false, fmt.Errorf("[DynamoDB] Failed to unmarshal visit record: %w", err)
	}

	return visit, true, nil
}
