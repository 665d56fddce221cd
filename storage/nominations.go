package storage

import (
	"context"
	"errors"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type NominationStorage interface {
	Create(ctx context.Context, nomination *Nomination) error
	Delete(ctx context.Context, cycleID, voterID string) error
	GetByCycle(ctx context.Context, cycleID string) ([]*Nomination, error)
}

type DynamoNominationStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoNominationStorage) Create(ctx context.Context, nomination *Nomination) error {
	item, err := attributevalue.MarshalMap(nomination)
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to marshal nomination: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("NOMINATION: voter %s already nominated in cycle %s", nomination.VoterID, nomination.CycleID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("NOMINATION: failed to create nomination: %v", err)
		return err
	}
	return nil
}

func (s *DynamoNominationStorage) Delete(ctx context.Context, cycleID, voterID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": cycleID, "SK": voterID})
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to marshal delete key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to delete nomination for voter %s: %v", voterID, err)
		return err
	}
	return nil
}

func (s *DynamoNominationStorage) GetByCycle(ctx context.Context, cycleID string) ([]*Nomination, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :cycle"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cycle": &types.AttributeValueMemberS{Value: cycleID},
		},
	}

	output, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("NOMINATION: failed to query nominations for cycle %s: %v", cycleID, err)
		return nil, err
	}

	var nominations []*Nomination
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &nominations); err != nil {
		logging.Log.Errorf("NOMINATION: failed to unmarshal nominations for cycle %s: %v", cycleID, err)
		return nil, err
	}
	return nominations, nil
}
