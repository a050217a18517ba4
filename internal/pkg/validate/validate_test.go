package validate

import (
	"testing"

	"github.com/cp-portal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStruct_Valid(t *testing.T) {
	err := Struct(domain.RegisterRequest{Email: "a@b.com", Password: "pw", FullName: "Alice"})
	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(domain.RegisterRequest{Email: "a@b.com"})
	assert.EqualError(t, err, "field 'password' failed 'required'; field 'full_name' failed 'required'")
}

func TestStruct_ChatMessagesDive(t *testing.T) {
	err := Struct(domain.ChatRequest{Messages: []domain.ChatMessage{{Role: "robot", Content: "x"}}})
	assert.ErrorContains(t, err, "field 'role' failed 'oneof'")

	err = Struct(domain.ChatRequest{})
	assert.ErrorContains(t, err, "field 'messages' failed 'required'")
}
