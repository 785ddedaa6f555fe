package repository

import (
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/smartfly_boarding/internal"
	"github.com/meetupaws/smartfly_boarding/passes/internal/model"
	"github.com/meetupaws/smartfly_boarding/passes/internal/session"
	"github.com/stretchr/testify/require"
)

func createSessionsTable(client *dynamodb.DynamoDB, table string, t *testing.T) {
	_, err := client.CreateTable(&dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("id"),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("id"),
				KeyType:       aws.String("HASH"),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	})
	if err != nil {
		t.Fatalf("Error while creating sessions table: %v\n", err)
	}
}

func boardingPass(id string, photo string) model.BoardingPass {
	return model.BoardingPass{
		ID:            id,
		FlightNumber:  "JFK-LAX-01",
		Name:          "Jane Doe",
		Seat:          "5A",
		Departure:     "JFK",
		Arrival:       "LAX",
		DepartureDate: "2025-05-15",
		ReturnDate:    "2025-05-22",
		DepartureTime: "08:00 AM",
		ArrivalTime:   "10:00 AM",
		Gate:          "A1",
		PhotoRef:      photo,
	}
}

func TestSessionsRepository_SaveAndFind(t *testing.T) {
	// Arrange
	table := "sessions"
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createSessionsTable(client, table, t)
	sessionsRepo := NewSessionsRepository(client, table, time.Hour)

	s := session.New("s1")
	s.SetIdentity(model.Identity{Name: "Jane Doe", PhotoRef: "imgA"})
	passes := []model.BoardingPass{
		boardingPass("p3", "imgA"),
		boardingPass("p1", ""),
		boardingPass("p2", "imgA"),
	}
	for _, p := range passes {
		require.NoError(t, s.AddBoardingPass(p))
	}

	// Act
	require.NoError(t, sessionsRepo.Save(s, 0))
	found, version, err := sessionsRepo.Find("s1")

	// Assert
	require.NoError(t, err)
	require.Equal(t, int64(1), version)
	if diff := cmp.Diff(passes, found.ListBoardingPasses()); diff != "" {
		t.Errorf("Error while finding session: (-want,+got)\n%s", diff)
	}
	identity, ok := found.Identity()
	require.True(t, ok)
	require.Equal(t, model.Identity{Name: "Jane Doe", PhotoRef: "imgA"}, identity)
}

func TestSessionsRepository_FindWithoutIdentity(t *testing.T) {
	table := "sessions"
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createSessionsTable(client, table, t)
	sessionsRepo := NewSessionsRepository(client, table, time.Hour)

	require.NoError(t, sessionsRepo.Save(session.New("anonymous"), 0))

	found, _, err := sessionsRepo.Find("anonymous")
	require.NoError(t, err)
	_, ok := found.Identity()
	require.False(t, ok)
	require.Empty(t, found.ListBoardingPasses())
}

func TestSessionsRepository_FindMissing(t *testing.T) {
	table := "sessions"
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createSessionsTable(client, table, t)
	sessionsRepo := NewSessionsRepository(client, table, time.Hour)

	_, _, err := sessionsRepo.Find("nope")
	require.Equal(t, ErrSessionNotFound, err)
}

func TestSessionsRepository_SaveRejectsStaleVersion(t *testing.T) {
	table := "sessions"
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createSessionsTable(client, table, t)
	sessionsRepo := NewSessionsRepository(client, table, time.Hour)

	require.NoError(t, sessionsRepo.Save(session.New("s1"), 0))
	require.Equal(t, ErrConcurrentUpdate, sessionsRepo.Save(session.New("s1"), 0))

	s, version, err := sessionsRepo.Find("s1")
	require.NoError(t, err)
	require.NoError(t, s.AddBoardingPass(boardingPass("p1", "imgA")))
	require.NoError(t, sessionsRepo.Save(s, version))

	require.Equal(t, ErrConcurrentUpdate, sessionsRepo.Save(s, version))
}

func TestSessionsRepository_ConcurrentAppends(t *testing.T) {
	// Arrange
	table := "sessions"
	closer, client := internal.DynamodbStart(t)
	defer closer()
	createSessionsTable(client, table, t)
	sessionsRepo := NewSessionsRepository(client, table, time.Hour)
	require.NoError(t, sessionsRepo.Save(session.New("s1"), 0))

	// Every writer loads the same version before any of them saves
	limit := 20
	loaded := make([]*session.Session, limit)
	versions := make([]int64, limit)
	for i := 0; i < limit; i++ {
		s, version, err := sessionsRepo.Find("s1")
		require.NoError(t, err)
		require.NoError(t, s.AddBoardingPass(boardingPass(fmt.Sprintf("p%v", i), "imgA")))
		loaded[i] = s
		versions[i] = version
	}

	// Act, concurrently try to save
	wg := sync.WaitGroup{}
	wg.Add(limit)
	mux := sync.Mutex{}
	success := 0
	conflicts := 0
	launchTime := time.Now().Add(100 * time.Millisecond)
	for i := 0; i < limit; i++ {
		go func(ii int) {
			defer wg.Done()
			time.Sleep(time.Until(launchTime))
			err := sessionsRepo.Save(loaded[ii], versions[ii])
			mux.Lock()
			defer mux.Unlock()
			switch err {
			case nil:
				log.Printf("[%v] saved the session\n", ii)
				success++
			case ErrConcurrentUpdate:
				conflicts++
			default:
				log.Printf("[%v] unexpected error: %v\n", ii, err)
			}
		}(i)
	}
	wg.Wait()

	// Assert
	require.Equal(t, 1, success, "more than one writer saved the same version")
	require.Equal(t, limit-1, conflicts)
	s, version, err := sessionsRepo.Find("s1")
	require.NoError(t, err)
	require.Equal(t, int64(2), version)
	require.Len(t, s.ListBoardingPasses(), 1)
}
