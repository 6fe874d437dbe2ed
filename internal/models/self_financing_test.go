package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutcassa/backend/internal/models"
)

// TestProjectDeleteUnlinks verifies that deleting a project clears the
// reference on its transactions without touching them otherwise.
func (suite *TestSuiteStandard) TestProjectDeleteUnlinks() {
	group := suite.createTestGroup(models.Group{Name: "Reparto"})

	project := models.SelfFinancingProject{Name: "Vendita torte", GroupID: group.ID}
	require.Nil(suite.T(), models.DB.Create(&project).Error)

	transaction := suite.createTestTransaction(models.Transaction{
		GroupID:         group.ID,
		Description:     "Incasso banchetto",
		Amount:          decimal.NewFromInt(50),
		Type:            models.TransactionTypeIncome,
		PaymentMethod:   models.PaymentMethodCash,
		SelfFinancingID: &project.ID,
	})

	require.Nil(suite.T(), models.DB.Delete(&project).Error)

	var reloaded models.Transaction
	require.Nil(suite.T(), models.DB.First(&reloaded, transaction.ID).Error)
	assert.Nil(suite.T(), reloaded.SelfFinancingID)
	assert.Equal(suite.T(), "Incasso banchetto", reloaded.Description)
}

func (suite *TestSuiteStandard) TestProjectBeforeSaveTrims() {
	group := suite.createTestGroup(models.Group{Name: "Clan"})

	project := models.SelfFinancingProject{Name: "  Autofinanziamento  ", GroupID: group.ID}
	require.Nil(suite.T(), models.DB.Create(&project).Error)
	assert.Equal(suite.T(), "Autofinanziamento", project.Name)
}
