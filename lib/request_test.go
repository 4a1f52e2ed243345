package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fairfoul_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
	Age   int    `json:"age" validate:"omitempty,gte=0"`
}

func postJSON(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestExtractAndValidateBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body, err := ExtractAndValidateBody[sampleBody](postJSON(`{"email":"a@b.com","name":"Eli"}`))
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", body.Email)
		assert.Equal(t, "Eli", body.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](postJSON(`{"email":`))
		assert.Error(t, err)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](postJSON(`{"email":"a@b.com","name":"Eli","extra":true}`))
		assert.Error(t, err)
	})

	t.Run("validation failure maps field errors", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](postJSON(`{"email":"not-an-email","name":"E"}`))
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Len(t, ve.Errors, 2)

		byField := make(map[string]string)
		for _, fe := range ve.Errors {
			byField[fe.Field] = fe.Message
		}
		assert.Equal(t, "must be a valid email address", byField["email"])
		assert.Equal(t, "must be at least 2 characters", byField["name"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](postJSON(`{}`))
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Errors, 2)
	})
}

func TestContactRequestBody(t *testing.T) {
	t.Run("phone is carried through", func(t *testing.T) {
		body, err := ExtractAndValidateBody[structs.ContactRequest](postJSON(
			`{"name":"Sam","email":"sam@example.com","phone":"+31612345678","subject":"Sizing","message":"Does the away shirt run small?"}`))
		require.NoError(t, err)
		assert.Equal(t, "+31612345678", body.Phone)
	})

	t.Run("phone is optional", func(t *testing.T) {
		body, err := ExtractAndValidateBody[structs.ContactRequest](postJSON(
			`{"name":"Sam","email":"sam@example.com","subject":"Sizing","message":"Does the away shirt run small?"}`))
		require.NoError(t, err)
		assert.Empty(t, body.Phone)
	})

	t.Run("too-short phone rejected", func(t *testing.T) {
		_, err := ExtractAndValidateBody[structs.ContactRequest](postJSON(
			`{"name":"Sam","email":"sam@example.com","phone":"123","subject":"Sizing","message":"Does the away shirt run small?"}`))
		assert.Error(t, err)
	})
}
