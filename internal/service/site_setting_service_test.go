package service

import (
	"context"
	"testing"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSettingDefaults(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSiteSettingService(gdb)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PrintPro", settings.BusinessName)
	assert.Empty(t, settings.Phone)
	assert.Empty(t, settings.Email)
}

func TestSiteSettingUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSiteSettingService(gdb)
	ctx := context.Background()

	input := SiteSettingsInput{
		BusinessName: " PrintPro Downtown ",
		Phone:        "555-0100",
		Email:        "hello@printpro.test",
		Address:      "1 Main St",
	}

	_, err := svc.Update(ctx, nil, input)
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	saved, err := svc.Update(ctx, testAdmin, input)
	require.NoError(t, err)
	assert.Equal(t, "PrintPro Downtown", saved.BusinessName)

	// 第二次更新走 upsert 分支。
	input.BusinessName = ""
	input.Phone = "555-0199"
	saved, err = svc.Update(ctx, testAdmin, input)
	require.NoError(t, err)
	assert.Equal(t, "PrintPro", saved.BusinessName)

	loaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, "555-0199", loaded.Phone)

	input.Email = "broken"
	_, err = svc.Update(ctx, testAdmin, input)
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Contains(t, verrs.Fields(), "email")
}
