package mongo

import (
	"testing"

	"passport/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyErr(message string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: message},
		},
	}
}

func TestDuplicateKeySentinel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email index",
			err:  duplicateKeyErr(`E11000 duplicate key error collection: passport.users index: uniq_email dup key: { emailAddress: "a@example.com" }`),
			want: repository.ErrDuplicateEmail,
		},
		{
			name: "username index",
			err:  duplicateKeyErr(`E11000 duplicate key error collection: passport.users index: uniq_username dup key: { username: "someone" }`),
			want: repository.ErrDuplicateUsername,
		},
		{
			name: "unknown index",
			err:  duplicateKeyErr(`E11000 duplicate key error collection: passport.users index: something_else dup key: { other: 1 }`),
			want: nil,
		},
		{
			name: "nil error",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := duplicateKeySentinel(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuplicateKeyErrorIsRecognizedByDriver(t *testing.T) {
	err := duplicateKeyErr("E11000 duplicate key error")
	assert.True(t, mongo.IsDuplicateKeyError(err))
}
