package error

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "validation", Kind(ValidationError("bad input")))
	assert.Equal(t, "authentication", Kind(AuthenticationError("rejected")))
	assert.Equal(t, "transport", Kind(TransportError("refused")))
	assert.Equal(t, "malformed_response", Kind(MalformedResponseError("empty")))
	assert.Equal(t, "unknown", Kind(errors.New("anything else")))
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, TransportError("connection refused"), "connection refused")
	assert.EqualError(t, AuthenticationError("credentials rejected with status 401"), "credentials rejected with status 401")
}
