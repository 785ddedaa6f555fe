package internal

import (
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/ory/dockertest"
)

func PortActive(network, address string, timeout int) error {
	for i := 0; i < timeout; i++ {
		s, err := net.Dial(network, address)
		if err == nil {
			s.Close()
			return nil
		}
		time.Sleep(time.Second)
	}
	return errors.New("port is not open")
}

// DynamodbStart runs amazon/dynamodb-local in docker and returns a client
// pointed at it. Tests are skipped when docker is not reachable.
func DynamodbStart(t *testing.T) (func(), *dynamodb.DynamoDB) {
	t.Helper()

	pool, err := dockertest.NewPool(os.Getenv("DOCKER_ENDPOINT"))
	if err != nil {
		t.Skipf("Could not connect to docker: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("Docker is not available: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository:   "amazon/dynamodb-local",
		Tag:          EnvOr("DYNAMODB_LOCAL_TAG", "latest"),
		ExposedPorts: []string{"8000"},
	})
	if err != nil {
		t.Fatalf("Could not start resource: %s", err)
	}

	closer := func() {
		if err := pool.Purge(resource); err != nil {
			t.Fatal(err)
		}
	}

	hostPort := resource.GetHostPort("8000/tcp")
	if err := PortActive("tcp", hostPort, 10); err != nil {
		closer()
		t.Fatalf("Could not connect to resource: %s", hostPort)
	}

	client := dynamodb.New(
		session.Must(session.NewSession()),
		&aws.Config{
			Endpoint:    aws.String("http://" + hostPort),
			Region:      aws.String("us-east-1"),
			Credentials: credentials.NewStaticCredentials("x", "x", ""),
		},
	)

	return closer, client
}
