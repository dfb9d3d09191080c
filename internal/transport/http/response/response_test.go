package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKNeverNullData(t *testing.T) {
	b, err := json.Marshal(OK(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":0,"msg":"OK","data":{}}`, string(b))
}

func TestError(t *testing.T) {
	assert.Equal(t, "Not Found", Error(CodeNotFound, "").Msg)
	assert.Equal(t, "gone", Error(CodeNotFound, "gone").Msg)
	assert.Equal(t, CodeTooManyRequests, Error(CodeTooManyRequests, "").Code)
}

func TestInvalid(t *testing.T) {
	b, err := json.Marshal(Invalid(map[string][]string{"email": {"This field is required."}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":400,"msg":"Bad Request","data":{"email":["This field is required."]}}`, string(b))
}
