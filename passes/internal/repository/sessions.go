package repository

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/session"
)

var (
	ErrSessionNotFound  = errors.New("session_not_found")
	ErrConcurrentUpdate = errors.New("concurrent_update")
)

const DefaultSessionTTL = 24 * time.Hour

type SessionsRepository struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	ttl    time.Duration
	now    func() time.Time
}

// Save writes the whole session. expectedVersion is the version returned by
// Find, or 0 for a session that has never been saved; the write fails with
// ErrConcurrentUpdate if someone else saved in between.
func (r *SessionsRepository) Save(s *session.Session, expectedVersion int64) error {
	item := map[string]*dynamodb.AttributeValue{
		"id": {
			S: aws.String(s.ID()),
		},
		"version": {
			N: aws.String(strconv.FormatInt(expectedVersion+1, 10)),
		},
		"expires_at": {
			N: aws.String(strconv.FormatInt(r.now().Add(r.ttl).Unix(), 10)),
		},
		"passes": {
			L: r.dehydratePasses(s.ListBoardingPasses()),
		},
	}
	if identity, ok := s.Identity(); ok {
		item["has_identity"] = &dynamodb.AttributeValue{BOOL: aws.Bool(true)}
		putString(item, "identity_name", identity.Name)
		putString(item, "identity_photo_ref", identity.PhotoRef)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}
	if expectedVersion == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(id)")
	} else {
		input.ConditionExpression = aws.String("version = :expected")
		input.ExpressionAttributeValues = map[string]*dynamodb.AttributeValue{
			":expected": {
				N: aws.String(strconv.FormatInt(expectedVersion, 10)),
			},
		}
	}

	_, err := r.client.PutItem(input)
	if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
		return ErrConcurrentUpdate
	}
	return err
}

// Find loads a session and the version it was saved with.
func (r *SessionsRepository) Find(id string) (*session.Session, int64, error) {
	out, err := r.client.GetItem(&dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {
				S: aws.String(id),
			},
		},
	})
	if err != nil {
		return nil, 0, err
	}
	if len(out.Item) == 0 {
		return nil, 0, ErrSessionNotFound
	}

	return r.hydrate(out.Item)
}

func (r *SessionsRepository) hydrate(item map[string]*dynamodb.AttributeValue) (*session.Session, int64, error) {
	id := stringAttr(item, "id")

	var version int64
	if v, ok := item["version"]; ok && v.N != nil {
		parsed, err := strconv.ParseInt(*v.N, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("session %s: bad version: %w", id, err)
		}
		version = parsed
	}

	var identity *model.Identity
	if v, ok := item["has_identity"]; ok && aws.BoolValue(v.BOOL) {
		identity = &model.Identity{
			Name:     stringAttr(item, "identity_name"),
			PhotoRef: stringAttr(item, "identity_photo_ref"),
		}
	}

	var passes []model.BoardingPass
	if passesList, ok := item["passes"]; ok {
		passes = r.hydratePasses(passesList.L)
	}

	s, err := session.Restore(id, identity, passes)
	if err != nil {
		return nil, 0, fmt.Errorf("session %s: %w", id, err)
	}
	return s, version, nil
}

func (r *SessionsRepository) dehydratePasses(passes []model.BoardingPass) []*dynamodb.AttributeValue {
	list := make([]*dynamodb.AttributeValue, len(passes))
	for i, p := range passes {
		fields := map[string]*dynamodb.AttributeValue{}
		putString(fields, "id", p.ID)
		putString(fields, "flight_number", p.FlightNumber)
		putString(fields, "name", p.Name)
		putString(fields, "seat", p.Seat)
		putString(fields, "departure", p.Departure)
		putString(fields, "arrival", p.Arrival)
		putString(fields, "departure_date", p.DepartureDate)
		putString(fields, "return_date", p.ReturnDate)
		putString(fields, "departure_time", p.DepartureTime)
		putString(fields, "arrival_time", p.ArrivalTime)
		putString(fields, "gate", p.Gate)
		putString(fields, "photo_ref", p.PhotoRef)
		list[i] = &dynamodb.AttributeValue{M: fields}
	}
	return list
}

// putString leaves empty values out of the item; they hydrate back as "".
func putString(item map[string]*dynamodb.AttributeValue, name string, value string) {
	if value == "" {
		return
	}
	item[name] = &dynamodb.AttributeValue{S: aws.String(value)}
}

func (r *SessionsRepository) hydratePasses(items []*dynamodb.AttributeValue) []model.BoardingPass {
	passes := make([]model.BoardingPass, len(items))
	for i, item := range items {
		m := item.M
		passes[i] = model.BoardingPass{
			ID:            stringAttr(m, "id"),
			FlightNumber:  stringAttr(m, "flight_number"),
			Name:          stringAttr(m, "name"),
			Seat:          stringAttr(m, "seat"),
			Departure:     stringAttr(m, "departure"),
			Arrival:       stringAttr(m, "arrival"),
			DepartureDate: stringAttr(m, "departure_date"),
			ReturnDate:    stringAttr(m, "return_date"),
			DepartureTime: stringAttr(m, "departure_time"),
			ArrivalTime:   stringAttr(m, "arrival_time"),
			Gate:          stringAttr(m, "gate"),
			PhotoRef:      stringAttr(m, "photo_ref"),
		}
	}
	return passes
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v != nil {
		return aws.StringValue(v.S)
	}
	return ""
}

func NewSessionsRepository(client dynamodbiface.DynamoDBAPI, table string, ttl time.Duration) *SessionsRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionsRepository{
		client: client,
		table:  table,
		ttl:    ttl,
		now:    time.Now,
	}
}
