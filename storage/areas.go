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

type NominationAreaStorage interface {
	Get(ctx context.Context, id string) (*NominationArea, error)
	GetAll(ctx context.Context) ([]*NominationArea, error)
	Create(ctx context.Context, area *NominationArea) error
	Update(ctx context.Context, area *NominationArea) error
	Delete(ctx context.Context, id string) error
}

type DynamoNominationAreaStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoNominationAreaStorage) Get(ctx context.Context, id string) (*NominationArea, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("AREA: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("AREA: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("AREA: no nomination area found with ID %s", id)
		return nil, nil
	}

	var area NominationArea
	if err := attributevalue.UnmarshalMap(out.Item, &area); err != nil {
		logging.Log.Errorf("AREA: failed to unmarshal nomination area: %v", err)
		return nil, err
	}
	return &area, nil
}

func (s *DynamoNominationAreaStorage) GetAll(ctx context.Context) ([]*NominationArea, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("AREA: scan failed: %v", err)
		return nil, err
	}

	var areas []*NominationArea
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &areas); err != nil {
		logging.Log.Errorf("AREA: failed to unmarshal nomination area list: %v", err)
		return nil, err
	}
	return areas, nil
}

func (s *DynamoNominationAreaStorage) Create(ctx context.Context, area *NominationArea) error {
	item, err := attributevalue.MarshalMap(area)
	if err != nil {
		logging.Log.Errorf("AREA: failed to marshal nomination area: %v", err)
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
			logging.Log.Warnf("AREA: nomination area with ID %s already exists", area.ID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("AREA: failed to create nomination area: %v", err)
		return err
	}
	return nil
}

func (s *DynamoNominationAreaStorage) Update(ctx context.Context, area *NominationArea) error {
	item, err := attributevalue.MarshalMap(area)
	if err != nil {
		logging.Log.Errorf("AREA: failed to marshal updated nomination area: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("AREA: failed to update nomination area: %v", err)
		return err
	}
	return nil
}

func (s *DynamoNominationAreaStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("AREA: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("AREA: failed to delete nomination area with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("AREA: deleted nomination area with ID %s", id)
	return nil
}
