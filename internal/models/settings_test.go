package models_test

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutcassa/backend/internal/models"
)

// TestLoadSettings verifies that the settings row is created with defaults
// on first use and read back afterwards.
func (suite *TestSuiteStandard) TestLoadSettings() {
	settings, err := models.LoadSettings(models.DB)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), settings.ConfirmOnDelete)
	assert.Nil(suite.T(), settings.FundManagerGroupID)
	assert.Empty(suite.T(), settings.UserCapabilities)

	settings.UserCapabilities = "canExport"
	require.Nil(suite.T(), models.DB.Save(&settings).Error)

	reread, err := models.LoadSettings(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "canExport", reread.UserCapabilities)
}

// TestFundManager verifies the resolution order for the group holding the
// shared bank account.
func (suite *TestSuiteStandard) TestFundManager() {
	leaders := models.Group{Name: models.DefaultFundManagerName}
	leaders.ID = uuid.New()
	reparto := models.Group{Name: "Reparto"}
	reparto.ID = uuid.New()

	// The configured group wins
	manager, ok := models.FundManager([]models.Group{leaders, reparto}, models.Settings{FundManagerGroupID: &reparto.ID})
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), reparto.ID, manager.ID)

	// A stale configuration falls back to the group named after the leaders
	stale := uuid.New()
	manager, ok = models.FundManager([]models.Group{reparto, leaders}, models.Settings{FundManagerGroupID: &stale})
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), leaders.ID, manager.ID)

	// The name match is case insensitive
	lower := models.Group{Name: "capi"}
	lower.ID = uuid.New()
	manager, ok = models.FundManager([]models.Group{reparto, lower}, models.Settings{})
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), lower.ID, manager.ID)

	// Without a match the oldest group serves
	manager, ok = models.FundManager([]models.Group{reparto}, models.Settings{})
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), reparto.ID, manager.ID)

	_, ok = models.FundManager(nil, models.Settings{})
	assert.False(suite.T(), ok)
}

// TestLoadSnapshot verifies that the snapshot is loaded in creation order
// with the member installments attached.
func (suite *TestSuiteStandard) TestLoadSnapshot() {
	group := suite.createTestGroup(models.Group{Name: "Reparto"})
	_ = suite.createTestMember(models.Member{GroupID: group.ID, Name: "Gaia Rossi"})

	snapshot, err := models.LoadSnapshot(models.DB)
	require.Nil(suite.T(), err)

	require.Len(suite.T(), snapshot.Groups, 2)
	assert.Equal(suite.T(), models.DefaultFundManagerName, snapshot.Groups[0].Name, "The seeded group was created first")
	assert.Equal(suite.T(), "Reparto", snapshot.Groups[1].Name)

	require.Len(suite.T(), snapshot.Members, 1)
	assert.Len(suite.T(), snapshot.Members[0].Installments, 4)

	assert.True(suite.T(), snapshot.Settings.ConfirmOnDelete)
}
