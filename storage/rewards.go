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

type RewardStorage interface {
	Get(ctx context.Context, id string) (*Reward, error)
	GetAll(ctx context.Context) ([]*Reward, error)
	Create(ctx context.Context, reward *Reward) error
	Update(ctx context.Context, reward *Reward) error
	Delete(ctx context.Context, id string) error
}

type DynamoRewardStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRewardStorage) Get(ctx context.Context, id string) (*Reward, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("REWARD: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("REWARD: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var reward Reward
	if err := attributevalue.UnmarshalMap(out.Item, &reward); err != nil {
		logging.Log.Errorf("REWARD: failed to unmarshal reward: %v", err)
		return nil, err
	}
	return &reward, nil
}

func (s *DynamoRewardStorage) GetAll(ctx context.Context) ([]*Reward, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("REWARD: scan failed: %v", err)
		return nil, err
	}

	var rewards []*Reward
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rewards); err != nil {
		logging.Log.Errorf("REWARD: failed to unmarshal reward list: %v", err)
		return nil, err
	}
	return rewards, nil
}

func (s *DynamoRewardStorage) Create(ctx context.Context, reward *Reward) error {
	item, err := attributevalue.MarshalMap(reward)
	if err != nil {
		logging.Log.Errorf("REWARD: failed to marshal reward: %v", err)
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
			logging.Log.Warnf("REWARD: reward with ID %s already exists", reward.ID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("REWARD: failed to create reward: %v", err)
		return err
	}
	return nil
}

func (s *DynamoRewardStorage) Update(ctx context.Context, reward *Reward) error {
	item, err := attributevalue.MarshalMap(reward)
	if err != nil {
		logging.Log.Errorf("REWARD: failed to marshal updated reward: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("REWARD: failed to update reward: %v", err)
		return err
	}
	return nil
}

func (s *DynamoRewardStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("REWARD: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("REWARD: failed to delete reward with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("REWARD: deleted reward with ID %s", id)
	return nil
}
