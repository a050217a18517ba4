package dynamo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/cp-portal/internal/config"
	"github.com/cp-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureTable records each DynamoDB JSON request and answers with a fixed
// status and body.
type captureTable struct {
	mu       sync.Mutex
	status   int
	response string
	target   string
	request  map[string]interface{}
}

func (c *captureTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, _ := io.ReadAll(r.Body)
	c.target = r.Header.Get("X-Amz-Target")
	c.request = map[string]interface{}{}
	_ = json.Unmarshal(body, &c.request)

	w.Header().Set("Content-Type", "application/x-amz-json-1.0")
	w.WriteHeader(c.status)
	_, _ = io.WriteString(w, c.response)
}

func newCaptureClient(t *testing.T, status int, response string) (*captureTable, aws.Config, *config.Config) {
	t.Helper()
	table := &captureTable{status: status, response: response}
	srv := httptest.NewServer(table)
	t.Cleanup(srv.Close)

	awsCfg := aws.Config{
		Region:           "us-east-1",
		Credentials:      credentials.NewStaticCredentialsProvider("test", "test", ""),
		RetryMaxAttempts: 1,
	}
	return table, awsCfg, &config.Config{AWSEndpointURL: srv.URL}
}

func attr(t *testing.T, m map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	v, ok := m[key].(map[string]interface{})
	require.True(t, ok, "missing %s", key)
	return v
}

func TestConfirmVerification_ConditionOnUnverifiedAndCode(t *testing.T) {
	table, awsCfg, cfg := newCaptureClient(t, http.StatusOK, `{}`)
	repo := NewAccountRepo(NewClient(awsCfg, cfg), "accounts", "emails")

	require.NoError(t, repo.ConfirmVerification(context.Background(), "acc-1", "123456"))

	assert.Equal(t, "DynamoDB_20120810.UpdateItem", table.target)
	req := table.request
	assert.Equal(t, "accounts", req["TableName"])
	assert.Equal(t, "#ver = :f AND #code = :code", req["ConditionExpression"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1 REMOVE #r0, #r1", req["UpdateExpression"])

	names := attr(t, req, "ExpressionAttributeNames")
	assert.Equal(t, map[string]interface{}{
		"#f0":   "updated_at",
		"#f1":   "verified",
		"#r0":   "verification_code",
		"#r1":   "code_expiry",
		"#ver":  "verified",
		"#code": "verification_code",
	}, names)

	values := attr(t, req, "ExpressionAttributeValues")
	assert.Equal(t, map[string]interface{}{"BOOL": false}, values[":f"])
	assert.Equal(t, map[string]interface{}{"S": "123456"}, values[":code"])
	assert.Equal(t, map[string]interface{}{"BOOL": true}, values[":v1"])

	key := attr(t, req, "Key")
	assert.Equal(t, map[string]interface{}{"S": "acc-1"}, key["account_id"])
}

func TestConfirmVerification_ConditionFailedIsCodeMismatch(t *testing.T) {
	_, awsCfg, cfg := newCaptureClient(t, http.StatusBadRequest,
		`{"__type":"com.amazonaws.dynamodb.v20120810#ConditionalCheckFailedException","message":"The conditional request failed"}`)
	repo := NewAccountRepo(NewClient(awsCfg, cfg), "accounts", "emails")

	err := repo.ConfirmVerification(context.Background(), "acc-1", "123456")
	assert.ErrorIs(t, err, domain.ErrCodeMismatch)
}

func TestCompleteVerification_ConditionOnHandleAndChallenge(t *testing.T) {
	table, awsCfg, cfg := newCaptureClient(t, http.StatusOK, `{}`)
	repo := NewLinkRepo(NewClient(awsCfg, cfg), "links", "accounts")

	err := repo.CompleteVerification(context.Background(), "acc-1", domain.PlatformCodeforces, "tourist", "ch-1", 3500)
	require.NoError(t, err)

	assert.Equal(t, "DynamoDB_20120810.TransactWriteItems", table.target)
	items, ok := table.request["TransactItems"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)

	link := attr(t, items[0].(map[string]interface{}), "Update")
	assert.Equal(t, "links", link["TableName"])
	assert.Equal(t, "#h = :handle AND #ch = :challenge", link["ConditionExpression"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1, #f2 = :v2 REMOVE #r0", link["UpdateExpression"])
	assert.Equal(t, map[string]interface{}{
		"#f0": "rating",
		"#f1": "updated_at",
		"#f2": "verified",
		"#r0": "challenge",
		"#h":  "handle",
		"#ch": "challenge",
	}, attr(t, link, "ExpressionAttributeNames"))
	linkValues := attr(t, link, "ExpressionAttributeValues")
	assert.Equal(t, map[string]interface{}{"S": "tourist"}, linkValues[":handle"])
	assert.Equal(t, map[string]interface{}{"S": "ch-1"}, linkValues[":challenge"])
	assert.Equal(t, map[string]interface{}{"N": "3500"}, linkValues[":v0"])
	linkKey := attr(t, link, "Key")
	assert.Equal(t, map[string]interface{}{"S": "acc-1"}, linkKey["account_id"])
	assert.Equal(t, map[string]interface{}{"S": domain.PlatformCodeforces}, linkKey["platform"])

	acc := attr(t, items[1].(map[string]interface{}), "Update")
	assert.Equal(t, "accounts", acc["TableName"])
	assert.Equal(t, "attribute_exists(#id)", acc["ConditionExpression"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1", acc["UpdateExpression"])
	assert.Equal(t, map[string]interface{}{
		"#f0": "rating",
		"#f1": "updated_at",
		"#id": "account_id",
	}, attr(t, acc, "ExpressionAttributeNames"))
}

func TestCompleteVerification_CancellationMapping(t *testing.T) {
	tests := []struct {
		name    string
		reasons string
		want    error
	}{
		{"link condition failed", `[{"Code":"ConditionalCheckFailed"},{"Code":"None"}]`, domain.ErrNoPendingRequest},
		{"account missing", `[{"Code":"None"},{"Code":"ConditionalCheckFailed"}]`, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, awsCfg, cfg := newCaptureClient(t, http.StatusBadRequest,
				`{"__type":"com.amazonaws.dynamodb.v20120810#TransactionCanceledException","Message":"Transaction cancelled","CancellationReasons":`+tt.reasons+`}`)
			repo := NewLinkRepo(NewClient(awsCfg, cfg), "links", "accounts")

			err := repo.CompleteVerification(context.Background(), "acc-1", domain.PlatformCodeforces, "tourist", "ch-1", 3500)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
