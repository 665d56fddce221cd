package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type WinnerStorage interface {
	Get(ctx context.Context, cycleID string) (*Winner, error)
	Create(ctx context.Context, winner *Winner) error
}

type DynamoWinnerStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoWinnerStorage) Get(ctx context.Context, cycleID string) (*Winner, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": cycleID})
	if err != nil {
		logging.Log.Errorf("WINNER: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("WINNER: GetItem for cycle %s failed: %v", cycleID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var winner Winner
	if err := attributevalue.UnmarshalMap(out.Item, &winner); err != nil {
		logging.Log.Errorf("WINNER: failed to unmarshal winner: %v", err)
		return nil, err
	}
	return &winner, nil
}

func (s *DynamoWinnerStorage) Create(ctx context.Context, winner *Winner) error {
	if winner.CreatedAt.IsZero() {
		winner.CreatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(winner)
	if err != nil {
		logging.Log.Errorf("WINNER: failed to marshal winner: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("WINNER: cycle %s already has a winner", winner.CycleID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("WINNER: failed to create winner: %v", err)
		return err
	}
	return nil
}
