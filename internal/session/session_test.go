package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/models"
	"github.com/nguyentunghieu19/nhom7-ptdacntt/internal/session"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		UserID: 1,
		Email:  "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	assert.NoError(t, err)

	return token
}

func newStore(t *testing.T) *session.TokenStore {
	t.Helper()

	store, err := session.NewTokenStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)

	return store
}

func TestSignIn(t *testing.T) {
	t.Run("Success - State Persists Across Sessions", func(t *testing.T) {
		// Arrange
		store := newStore(t)
		first := session.New(store)
		token := signedToken(t, time.Now().Add(time.Hour))
		user := &models.User{ID: 1, FullName: "Nguyễn Văn A", Email: "a@example.com"}

		// Act
		first.SignIn(token, user)
		restored := session.New(store)

		// Assert
		assert.True(t, restored.IsAuthenticated())
		assert.Equal(t, token, restored.Token())
		assert.Equal(t, "Nguyễn Văn A", restored.User().FullName)
	})

	t.Run("Listeners Are Notified Of The Transition", func(t *testing.T) {
		// Arrange
		store := newStore(t)
		s := session.New(store)

		var transitions []bool

		s.OnAuthChange(func(signedIn bool) { transitions = append(transitions, signedIn) })

		// Act
		s.SignIn(signedToken(t, time.Now().Add(time.Hour)), nil)
		s.SignOut()

		// Assert
		assert.Equal(t, []bool{true, false}, transitions)
	})
}

func TestRestore(t *testing.T) {
	t.Run("Expired Token Is Discarded", func(t *testing.T) {
		// Arrange
		store := newStore(t)
		first := session.New(store)
		first.SignIn(signedToken(t, time.Now().Add(-time.Minute)), &models.User{ID: 1})

		// Act
		restored := session.New(store)

		// Assert
		assert.False(t, restored.IsAuthenticated())
		assert.Empty(t, restored.Token())
		assert.Nil(t, restored.User())
	})

	t.Run("Garbage Token Is Discarded", func(t *testing.T) {
		// Arrange
		store := newStore(t)
		first := session.New(store)
		first.SignIn("not-a-jwt", nil)

		// Act
		restored := session.New(store)

		// Assert
		assert.False(t, restored.IsAuthenticated())
	})

	t.Run("Empty Store Starts Signed Out", func(t *testing.T) {
		// Arrange & Act
		s := session.New(newStore(t))

		// Assert
		assert.False(t, s.IsAuthenticated())
		assert.Nil(t, s.User())
	})
}

func TestExpire(t *testing.T) {
	t.Run("Clears The Credential And Notifies Once", func(t *testing.T) {
		// Arrange
		store := newStore(t)
		s := session.New(store)
		s.SignIn(signedToken(t, time.Now().Add(time.Hour)), &models.User{ID: 1})

		signOuts := 0

		s.OnAuthChange(func(signedIn bool) {
			if !signedIn {
				signOuts++
			}
		})

		// Act: the second expiry is a no-op, there is nothing left to clear.
		s.Expire()
		s.Expire()

		// Assert
		assert.False(t, s.IsAuthenticated())
		assert.Equal(t, 1, signOuts)
		assert.False(t, session.New(store).IsAuthenticated())
	})
}
