package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiqfome-api/internal/domain"
	"aiqfome-api/internal/testutil"
	"aiqfome-api/pkg/utils"
)

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestParseFlags(t *testing.T) {
	o, _, err := parseFlags([]string{"-u", "root", "--email", "root@example.com", "-c", "configs/x.yaml"},
		env(map[string]string{"ADMIN_PASSWORD": "from-env"}))
	require.NoError(t, err)
	assert.Equal(t, "configs/x.yaml", o.ConfigPath)
	assert.Equal(t, "root", o.Input.Username)
	assert.Equal(t, "from-env", o.Input.Password)
	assert.Equal(t, "Admin", o.Input.FirstName)
	assert.Equal(t, "User", o.Input.LastName)

	o, _, err = parseFlags([]string{"-u", "root", "-e", "root@example.com", "-p", "flag-pw"},
		env(map[string]string{"ADMIN_PASSWORD": "from-env", "CONFIG_PATH": "env.yaml"}))
	require.NoError(t, err)
	assert.Equal(t, "flag-pw", o.Input.Password)
	assert.Equal(t, "env.yaml", o.ConfigPath)

	_, _, err = parseFlags([]string{"-u", "root"}, env(nil))
	assert.ErrorIs(t, err, errUsage)

	_, _, err = parseFlags([]string{"--nope"}, env(nil))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errUsage))
}

func TestCreateStaff(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	o, _, err := parseFlags([]string{"-u", "root", "-e", "root@example.com", "-p", "s3cret-pass"}, env(nil))
	require.NoError(t, err)

	c, err := createStaff(ctx, db, o.Input)
	require.NoError(t, err)
	assert.True(t, c.IsStaff)
	assert.True(t, c.IsActive)
	assert.True(t, utils.CheckPassword("s3cret-pass", c.PasswordHash))

	_, err = createStaff(ctx, db, o.Input)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, []string{domain.MsgUsernameExists}, v.Fields["username"])

	in := o.Input
	in.Username = "other"
	in.Email = "not-an-email"
	_, err = createStaff(ctx, db, in)
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "email")
}
