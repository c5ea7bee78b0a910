package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTransactionsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"illegal operation code",
			mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"},
			true,
		},
		{
			"message only",
			mongo.CommandError{Code: 0, Message: "Transaction numbers are only allowed on a replica set member or mongos"},
			true,
		},
		{
			"wrapped command error",
			fmt.Errorf("recording payment: %w", mongo.CommandError{Code: 20}),
			true,
		},
		{
			"other command error",
			mongo.CommandError{Code: 11000, Message: "duplicate key"},
			false,
		},
		{
			"plain error",
			errors.New("connection reset"),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transactionsUnsupported(tt.err))
		})
	}
}
