package user_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/storage"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/tests"
)

func TestService_Create(t *testing.T) {
	repos := storage.OpenInMem()
	svc := user.NewService(repos.Users, testutil.NewValidator(), testutil.NewClock())
	ctx := context.Background()

	tests := []struct {
		name  string
		nu    user.NewUser
		field string
	}{
		{name: "missing name", nu: user.NewUser{Role: core.RoleStudent}, field: "name"},
		{name: "bad email", nu: user.NewUser{Name: "Sam", Email: "sam", Role: core.RoleStudent}, field: "email"},
		{name: "unknown role", nu: user.NewUser{Name: "Sam", Role: "janitor"}, field: "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.nu)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}

	t.Run("created", func(t *testing.T) {
		usr, err := svc.Create(ctx, user.NewUser{Name: " Sam ", Email: " Sam@Academy.Test", Role: core.RoleStudent})
		require.NoError(t, err)
		assert.Equal(t, "Sam", usr.Name)
		assert.Equal(t, "sam@academy.test", usr.Email)
		assert.Equal(t, testutil.Now, usr.CreatedAt)
		assert.True(t, usr.Actor().IsStudent())

		got, err := svc.Get(ctx, usr.ID)
		require.NoError(t, err)
		assert.Equal(t, usr, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := svc.Get(ctx, 404)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestUser_MailAddress(t *testing.T) {
	_, ok := user.User{Name: "Sam"}.MailAddress()
	assert.False(t, ok)
	addr, ok := user.User{Name: "Sam", Email: "sam@academy.test"}.MailAddress()
	assert.True(t, ok)
	assert.Equal(t, `"Sam" <sam@academy.test>`, addr.String())
}
