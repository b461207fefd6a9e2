package test

import (
	"net/url"
	"testing"

	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// AnonymousCSRFToken is the CSRF token sent by Anonymous.
const AnonymousCSRFToken = "anonymous-test-token"

// Client holds the headers and the CSRF token a browser would send.
type Client struct {
	Headers   map[string]string
	CSRFToken string
}

// Anonymous returns a client that is not logged in.
func Anonymous() Client {
	return Client{
		Headers:   map[string]string{"Cookie": auth.CSRFField + "=" + AnonymousCSRFToken},
		CSRFToken: AnonymousCSRFToken,
	}
}

// Login creates a session for the user and returns a client using it.
func Login(t *testing.T, userID uuid.UUID) Client {
	session, err := models.NewSession(models.DB, userID, auth.Duration())
	require.Nil(t, err, "Session could not be created")

	return Client{
		Headers:   map[string]string{"Cookie": auth.CookieName + "=" + session.Token},
		CSRFToken: session.CSRFToken,
	}
}

// Form adds the CSRF token of the client to the form values.
func (c Client) Form(values url.Values) url.Values {
	if values == nil {
		values = url.Values{}
	}
	values.Set(auth.CSRFField, c.CSRFToken)
	return values
}
