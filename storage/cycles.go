package storage

import (
	"context"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type CycleStorage interface {
	Get(ctx context.Context, id string) (*Cycle, error)
	GetAll(ctx context.Context) ([]*Cycle, error)
	Put(ctx context.Context, cycle *Cycle) error
	Delete(ctx context.Context, id string) error
}

type DynamoCycleStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoCycleStorage) Get(ctx context.Context, id string) (*Cycle, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("CYCLE: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CYCLE: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var cycle Cycle
	if err := attributevalue.UnmarshalMap(out.Item, &cycle); err != nil {
		logging.Log.Errorf("CYCLE: failed to unmarshal cycle: %v", err)
		return nil, err
	}
	return &cycle, nil
}

func (s *DynamoCycleStorage) GetAll(ctx context.Context) ([]*Cycle, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("CYCLE: scan failed: %v", err)
		return nil, err
	}

	var cycles []*Cycle
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cycles); err != nil {
		logging.Log.Errorf("CYCLE: failed to unmarshal cycle list: %v", err)
		return nil, err
	}
	return cycles, nil
}

func (s *DynamoCycleStorage) Put(ctx context.Context, cycle *Cycle) error {
	item, err := attributevalue.MarshalMap(cycle)
	if err != nil {
		logging.Log.Errorf("CYCLE: failed to marshal cycle: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("CYCLE: failed to put cycle: %v", err)
		return err
	}
	return nil
}

func (s *DynamoCycleStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("CYCLE: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CYCLE: failed to delete cycle with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("CYCLE: deleted cycle with ID %s", id)
	return nil
}
