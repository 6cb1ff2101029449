package main

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/printpro/internal/db"
	"github.com/printpro/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sampleSeed = `
services:
  - title: Banners
    description: Large format vinyl banners.
    order: 5
  - title: Business Cards
    description: Matte or gloss, 500 per box.
    imageUrl: /uploads/cards.png
    order: 1
gallery:
  - title: Storefront signage
    imageUrl: /uploads/storefront.jpg
settings:
  businessName: PrintPro
  phone: 555-0100
  email: hello@printpro.test
  address: 12 Main St
`

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.DriverSQLite, dsn, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { closeDB(gdb) })
	return gdb
}

func TestParseSeed(t *testing.T) {
	data, err := parseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	require.Len(t, data.Services, 2)
	assert.Equal(t, "Banners", data.Services[0].Title)
	assert.Equal(t, 5, data.Services[0].Order)
	assert.Equal(t, "/uploads/cards.png", data.Services[1].ImageURL)
	require.Len(t, data.Gallery, 1)
	require.NotNil(t, data.Settings)
	assert.Equal(t, "555-0100", data.Settings.Phone)
}

func TestParseSeedEmptyAndUnknownFields(t *testing.T) {
	data, err := parseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data.Services)
	assert.Nil(t, data.Settings)

	_, err = parseSeed(strings.NewReader("servicez:\n  - title: typo\n"))
	assert.Error(t, err)
}

func TestLookupIdentityRequiresAdmin(t *testing.T) {
	gdb := setupSeedTestDB(t)
	ctx := context.Background()

	_, err := lookupIdentity(ctx, gdb, "")
	require.Error(t, err)

	_, err = db.EnsureUser(gdb, "owner", "secret")
	require.NoError(t, err)

	id, err := lookupIdentity(ctx, gdb, "")
	require.NoError(t, err)
	assert.Equal(t, "owner", id.Username)

	_, err = lookupIdentity(ctx, gdb, "someone-else")
	assert.Error(t, err)
}

func TestApplySeedIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	ctx := context.Background()

	_, err := db.EnsureUser(gdb, "owner", "secret")
	require.NoError(t, err)
	actor, err := lookupIdentity(ctx, gdb, "owner")
	require.NoError(t, err)

	data, err := parseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	report, err := applySeed(ctx, gdb, actor, data)
	require.NoError(t, err)
	assert.Equal(t, 2, report.ServicesCreated)
	assert.Equal(t, 1, report.GalleryCreated)
	assert.True(t, report.SettingsUpdated)

	services, err := service.NewCatalogService(gdb).List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Business Cards", services[0].Title)

	settings, err := service.NewSiteSettingService(gdb).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PrintPro", settings.BusinessName)

	again, err := applySeed(ctx, gdb, actor, data)
	require.NoError(t, err)
	assert.Equal(t, 0, again.ServicesCreated)
	assert.Equal(t, 2, again.ServicesSkipped)
	assert.Equal(t, 1, again.GallerySkipped)

	count, err := service.NewCatalogService(gdb).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestApplySeedRejectsMissingIdentity(t *testing.T) {
	gdb := setupSeedTestDB(t)
	data, err := parseSeed(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	_, err = applySeed(context.Background(), gdb, nil, data)
	assert.Error(t, err)

	count, err := service.NewCatalogService(gdb).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
