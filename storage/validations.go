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

// ValidationStorage keys validations on (cycle, validator), so the
// one-validation-per-validator invariant is structural. Replace overwrites
// the row in a single call, which keeps switching nominees atomic.
type ValidationStorage interface {
	Create(ctx context.Context, validation *Validation) error
	Replace(ctx context.Context, validation *Validation) error
	Delete(ctx context.Context, cycleID, validatorID string) error
	GetByCycle(ctx context.Context, cycleID string) ([]*Validation, error)
}

type DynamoValidationStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoValidationStorage) Create(ctx context.Context, validation *Validation) error {
	item, err := attributevalue.MarshalMap(validation)
	if err != nil {
		logging.Log.Errorf("VALIDATION: failed to marshal validation: %v", err)
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
			logging.Log.Warnf("VALIDATION: validator %s already validated in cycle %s", validation.ValidatorID, validation.CycleID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("VALIDATION: failed to create validation: %v", err)
		return err
	}
	return nil
}

func (s *DynamoValidationStorage) Replace(ctx context.Context, validation *Validation) error {
	item, err := attributevalue.MarshalMap(validation)
	if err != nil {
		logging.Log.Errorf("VALIDATION: failed to marshal replacement validation: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("VALIDATION: failed to replace validation: %v", err)
		return err
	}
	return nil
}

func (s *DynamoValidationStorage) Delete(ctx context.Context, cycleID, validatorID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": cycleID, "SK": validatorID})
	if err != nil {
		logging.Log.Errorf("VALIDATION: failed to marshal delete key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("VALIDATION: failed to delete validation for validator %s: %v", validatorID, err)
		return err
	}
	return nil
}

func (s *DynamoValidationStorage) GetByCycle(ctx context.Context, cycleID string) ([]*Validation, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :cycle"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cycle": &types.AttributeValueMemberS{Value: cycleID},
		},
	}

	output, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("VALIDATION: failed to query validations for cycle %s: %v", cycleID, err)
		return nil, err
	}

	var validations []*Validation
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &validations); err != nil {
		logging.Log.Errorf("VALIDATION: failed to unmarshal validations for cycle %s: %v", cycleID, err)
		return nil, err
	}
	return validations, nil
}
