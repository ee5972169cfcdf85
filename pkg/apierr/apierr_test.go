package apierr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/posts/pkg/apierr"
	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/require"
)

type fakeClassifier map[error]apierr.WriteError

func (f fakeClassifier) ClassifyWriteError(err error) apierr.WriteError {
	for target, we := range f {
		if errors.Is(err, target) {
			return we
		}
	}
	return apierr.WriteError{}
}

var (
	errDupUsername = errors.New("duplicate username")
	errDupOther    = errors.New("duplicate on another index")
	errConnection  = errors.New("connection reset")
)

func classifier() fakeClassifier {
	return fakeClassifier{
		errDupUsername: apierr.Conflict("user_username_key"),
		errDupOther:    apierr.Conflict("user_email_key"),
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apierr.Kind
	}{
		{"unauthorized", apierr.Unauthorized(), apierr.KindUnauthorized},
		{"forbidden", apierr.Forbidden(), apierr.KindForbidden},
		{"not found", apierr.NotFound(), apierr.KindNotFound},
		{"unprocessable", apierr.Unprocessable("username", "username taken"), apierr.KindUnprocessable},
		{"wrapped classified", fmt.Errorf("ctx: %w", apierr.Forbidden()), apierr.KindForbidden},
		{"plain error", errors.New("boom"), apierr.KindInternal},
		{"internal", apierr.Internal(errors.New("boom")), apierr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, apierr.KindOf(tt.err))
		})
	}
}

func TestInternal_DoesNotReclassify(t *testing.T) {
	require.Nil(t, apierr.Internal(nil))

	nf := apierr.NotFound()
	require.Same(t, nf, apierr.Internal(nf))

	err := apierr.Internalf(errConnection, "load user %s", "alice")
	require.Equal(t, apierr.KindInternal, apierr.KindOf(err))
	require.ErrorIs(t, err, errConnection)
	require.Contains(t, err.Error(), "load user alice")
}

func TestOnConstraint(t *testing.T) {
	taken := apierr.Unprocessable("username", "username taken")

	t.Run("nil passes through", func(t *testing.T) {
		require.NoError(t, apierr.OnConstraint(nil, classifier(), "user_username_key", taken))
	})

	t.Run("named constraint is mapped", func(t *testing.T) {
		err := apierr.OnConstraint(fmt.Errorf("insert: %w", errDupUsername), classifier(), "user_username_key", taken)
		require.Equal(t, apierr.KindUnprocessable, apierr.KindOf(err))
		require.Equal(t, map[string][]string{"username": {"username taken"}}, apierr.FieldsOf(err))
		require.ErrorIs(t, err, errDupUsername, "cause is kept for logs")
	})

	t.Run("other constraint is internal", func(t *testing.T) {
		err := apierr.OnConstraint(errDupOther, classifier(), "user_username_key", taken)
		require.Equal(t, apierr.KindInternal, apierr.KindOf(err))
	})

	t.Run("generic store failure is internal", func(t *testing.T) {
		err := apierr.OnConstraint(errConnection, classifier(), "user_username_key", taken)
		require.Equal(t, apierr.KindInternal, apierr.KindOf(err))
		require.ErrorIs(t, err, errConnection)
	})

	t.Run("classified error is not reclassified", func(t *testing.T) {
		err := apierr.OnConstraint(apierr.NotFound(), classifier(), "user_username_key", taken)
		require.Equal(t, apierr.KindNotFound, apierr.KindOf(err))
	})

	t.Run("mapped template is not mutated", func(t *testing.T) {
		_ = apierr.OnConstraint(errDupUsername, classifier(), "user_username_key", taken)
		require.Nil(t, taken.Err)
	})
}

func TestOnConstraints(t *testing.T) {
	err := apierr.OnConstraints(errDupOther, classifier(),
		apierr.ConstraintMapping{Constraint: "user_username_key", Err: apierr.Unprocessable("username", "username taken")},
		apierr.ConstraintMapping{Constraint: "user_email_key", Err: apierr.Unprocessable("email", "email taken")},
	)
	require.Equal(t, map[string][]string{"email": {"email taken"}}, apierr.FieldsOf(err))

	err = apierr.OnConstraints(errConnection, classifier())
	require.Equal(t, apierr.KindInternal, apierr.KindOf(err))
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b loginBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Username, validation.Required.Error("can't be blank")),
		validation.Field(&b.Password, validation.Required.Error("can't be blank")),
	)
}

func TestFromValidation(t *testing.T) {
	require.NoError(t, apierr.FromValidation(nil))

	err := apierr.FromValidation(loginBody{}.Validate())
	require.Equal(t, apierr.KindUnprocessable, apierr.KindOf(err))
	require.Equal(t, map[string][]string{
		"username": {"can't be blank"},
		"password": {"can't be blank"},
	}, apierr.FieldsOf(err))

	require.NoError(t, apierr.FromValidation(loginBody{Username: "alice", Password: "pw"}.Validate()))

	err = apierr.FromValidation(errors.New("unexpected EOF"))
	require.Equal(t, map[string][]string{"body": {"unexpected EOF"}}, apierr.FieldsOf(err))
}

func TestError_Message(t *testing.T) {
	err := apierr.Unprocessable("username", "username taken")
	require.Equal(t, `unprocessable_entity username=["username taken"]`, err.Error())
	require.Equal(t, "forbidden", apierr.Forbidden().Error())
}
