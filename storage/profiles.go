package storage

import (
	"context"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ProfileStorage is read-only for the workflow: profiles are owned by the
// identity service, this API only joins display attributes and roles.
type ProfileStorage interface {
	Get(ctx context.Context, id string) (*Profile, error)
	GetAll(ctx context.Context) ([]*Profile, error)
}

type DynamoProfileStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoProfileStorage) Get(ctx context.Context, id string) (*Profile, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("PROFILE: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var profile Profile
	if err := attributevalue.UnmarshalMap(out.Item, &profile); err != nil {
		logging.Log.Errorf("PROFILE: failed to unmarshal profile: %v", err)
		return nil, err
	}
	return &profile, nil
}

func (s *DynamoProfileStorage) GetAll(ctx context.Context) ([]*Profile, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("PROFILE: scan failed: %v", err)
		return nil, err
	}

	var profiles []*Profile
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &profiles); err != nil {
		logging.Log.Errorf("PROFILE: failed to unmarshal profile list: %v", err)
		return nil, err
	}
	return profiles, nil
}
