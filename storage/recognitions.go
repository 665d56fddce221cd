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

type RecognitionProgramStorage interface {
	Get(ctx context.Context, id string) (*RecognitionProgram, error)
	GetAll(ctx context.Context) ([]*RecognitionProgram, error)
	Create(ctx context.Context, program *RecognitionProgram) error
}

type RecognitionStorage interface {
	Create(ctx context.Context, recognition *Recognition) error
	GetByProgram(ctx context.Context, programID string) ([]*Recognition, error)
}

type DynamoRecognitionProgramStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRecognitionProgramStorage) Get(ctx context.Context, id string) (*RecognitionProgram, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("PROGRAM: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PROGRAM: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var program RecognitionProgram
	if err := attributevalue.UnmarshalMap(out.Item, &program); err != nil {
		logging.Log.Errorf("PROGRAM: failed to unmarshal program: %v", err)
		return nil, err
	}
	return &program, nil
}

func (s *DynamoRecognitionProgramStorage) GetAll(ctx context.Context) ([]*RecognitionProgram, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("PROGRAM: scan failed: %v", err)
		return nil, err
	}

	var programs []*RecognitionProgram
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &programs); err != nil {
		logging.Log.Errorf("PROGRAM: failed to unmarshal program list: %v", err)
		return nil, err
	}
	return programs, nil
}

func (s *DynamoRecognitionProgramStorage) Create(ctx context.Context, program *RecognitionProgram) error {
	item, err := attributevalue.MarshalMap(program)
	if err != nil {
		logging.Log.Errorf("PROGRAM: failed to marshal program: %v", err)
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
			logging.Log.Warnf("PROGRAM: program with ID %s already exists", program.ID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("PROGRAM: failed to create program: %v", err)
		return err
	}
	return nil
}

type DynamoRecognitionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRecognitionStorage) Create(ctx context.Context, recognition *Recognition) error {
	item, err := attributevalue.MarshalMap(recognition)
	if err != nil {
		logging.Log.Errorf("RECOGNITION: failed to marshal recognition: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		logging.Log.Errorf("RECOGNITION: failed to create recognition: %v", err)
		return err
	}
	return nil
}

func (s *DynamoRecognitionStorage) GetByProgram(ctx context.Context, programID string) ([]*Recognition, error) {
	input := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :program"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":program": &types.AttributeValueMemberS{Value: programID},
		},
	}

	output, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("RECOGNITION: failed to query recognitions for program %s: %v", programID, err)
		return nil, err
	}

	var recognitions []*Recognition
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &recognitions); err != nil {
		logging.Log.Errorf("RECOGNITION: failed to unmarshal recognitions: %v", err)
		return nil, err
	}
	return recognitions, nil
}
