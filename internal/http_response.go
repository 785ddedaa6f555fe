package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/xeipuuv/gojsonschema"
)

func Respond(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}
}

// JSON marshals v without HTML escaping so QR payloads embedded in a
// response stay byte-for-byte identical to what the codec produced.
func JSON(statusCode int, v interface{}) events.APIGatewayProxyResponse {
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return Error(http.StatusInternalServerError, err)
	}
	return Respond(statusCode, string(bytes.TrimRight(buf.Bytes(), "\n")))
}

func Error(statusCode int, err error) events.APIGatewayProxyResponse {
	responseBytes, _ := json.Marshal(map[string]interface{}{
		"errors": []string{err.Error()},
	})

	return Respond(statusCode, string(responseBytes))
}

func SchemaErrors(statusCode int, schemaErrors []gojsonschema.ResultError) events.APIGatewayProxyResponse {
	errors := []string{}

	for _, error := range schemaErrors {
		errString := fmt.Sprintf("%v", error)
		errors = append(errors, errString)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"errors": errors,
	})

	return Respond(statusCode, string(body))
}

// ValidateBody checks a request body against a JSON schema. A nil result
// with a non-nil error means the body is not JSON at all.
func ValidateBody(schema *gojsonschema.Schema, body string) ([]gojsonschema.ResultError, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	return result.Errors(), nil
}

// MustSchema compiles a schema literal at init time.
func MustSchema(literal string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(literal))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return schema
}
