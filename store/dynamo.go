package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/audite/eartrain/constants"
)

// DynamoStore keeps each list as one item keyed by PK, with the entries in
// a string list attribute. Useful when the trainer runs behind a server
// and lists should follow the user across devices.
type DynamoStore struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamoStore() (*DynamoStore, error) {
	config := aws.Config{Region: aws.String(constants.GetDynamoRegion())}
	if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
		config.Endpoint = &endpoint
	}
	sess, err := session.NewSession(&config)
	if err != nil {
		return nil, fmt.Errorf("could not create DynamoDB session: %w", err)
	}
	return &DynamoStore{
		client: dynamodb.New(sess),
		table:  constants.GetDynamoTable(),
	}, nil
}

func (s *DynamoStore) LoadList(key string) ([]string, error) {
	out, err := s.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(key)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not load list %q: %w", key, err)
	}
	if out.Item == nil {
		return nil, nil
	}

	attr, ok := out.Item["Items"]
	if !ok || attr.L == nil {
		return nil, nil
	}
	var res []string
	for _, v := range attr.L {
		if v.S != nil {
			res = append(res, *v.S)
		}
	}
	return res, nil
}

func (s *DynamoStore) SaveList(key string, items []string) error {
	values := make([]*dynamodb.AttributeValue, len(items))
	for i, item := range items {
		values[i] = &dynamodb.AttributeValue{S: aws.String(item)}
	}

	_, err := s.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]*dynamodb.AttributeValue{
			"PK":    {S: aws.String(key)},
			"Items": {L: values},
		},
	})
	if err != nil {
		return fmt.Errorf("could not save list %q: %w", key, err)
	}
	return nil
}
