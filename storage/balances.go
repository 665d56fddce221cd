package storage

import (
	"context"
	"errors"
	"strconv"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PointsBalanceStorage moves recognition points between profiles. Transfer
// and Spend must be all-or-nothing: a crash must never leave points deducted
// on one side only.
type PointsBalanceStorage interface {
	Get(ctx context.Context, profileID, programID string) (*PointsBalance, error)
	Put(ctx context.Context, balance *PointsBalance) error
	Transfer(ctx context.Context, programID, senderID, receiverID string, points int) error
	Spend(ctx context.Context, profileID, programID string, points int) error
}

type DynamoPointsBalanceStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoPointsBalanceStorage) Get(ctx context.Context, profileID, programID string) (*PointsBalance, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": profileID, "SK": programID})
	if err != nil {
		logging.Log.Errorf("BALANCE: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("BALANCE: GetItem for profile %s failed: %v", profileID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrItemNotFound
	}

	var balance PointsBalance
	if err := attributevalue.UnmarshalMap(out.Item, &balance); err != nil {
		logging.Log.Errorf("BALANCE: failed to unmarshal balance: %v", err)
		return nil, err
	}
	return &balance, nil
}

func (s *DynamoPointsBalanceStorage) Put(ctx context.Context, balance *PointsBalance) error {
	item, err := attributevalue.MarshalMap(balance)
	if err != nil {
		logging.Log.Errorf("BALANCE: failed to marshal balance: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("BALANCE: failed to put balance: %v", err)
		return err
	}
	return nil
}

// Transfer debits the sender's distributable points and credits the
// receiver's earned points in one transaction. The condition on the debit
// rejects overdrafts.
func (s *DynamoPointsBalanceStorage) Transfer(ctx context.Context, programID, senderID, receiverID string, points int) error {
	amount := strconv.Itoa(points)

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: &s.TableName,
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: senderID},
						"SK": &types.AttributeValueMemberS{Value: programID},
					},
					UpdateExpression:    aws.String("SET Distributable = Distributable - :points"),
					ConditionExpression: aws.String("Distributable >= :points"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":points": &types.AttributeValueMemberN{Value: amount},
					},
				},
			},
			{
				Update: &types.Update{
					TableName: &s.TableName,
					Key: map[string]types.AttributeValue{
						"PK": &types.AttributeValueMemberS{Value: receiverID},
						"SK": &types.AttributeValueMemberS{Value: programID},
					},
					UpdateExpression: aws.String("ADD Earned :points"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":points": &types.AttributeValueMemberN{Value: amount},
					},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			logging.Log.Warnf("BALANCE: transfer of %d points from %s rejected", points, senderID)
			return ErrInsufficientPoints
		}
		logging.Log.Errorf("BALANCE: transfer failed: %v", err)
		return err
	}
	return nil
}

func (s *DynamoPointsBalanceStorage) Spend(ctx context.Context, profileID, programID string, points int) error {
	amount := strconv.Itoa(points)

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: profileID},
			"SK": &types.AttributeValueMemberS{Value: programID},
		},
		UpdateExpression:    aws.String("SET Earned = Earned - :points"),
		ConditionExpression: aws.String("Earned >= :points"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":points": &types.AttributeValueMemberN{Value: amount},
		},
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("BALANCE: profile %s cannot spend %d points", profileID, points)
			return ErrInsufficientPoints
		}
		logging.Log.Errorf("BALANCE: spend failed: %v", err)
		return err
	}
	return nil
}
