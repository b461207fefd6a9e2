package models_test

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestModelTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	model := models.DefaultModel{
		CreatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
		UpdatedAt: time.Date(2001, 2, 3, 4, 5, 6, 7, tz),
	}

	err := model.AfterFind(models.DB)
	suite.Require().Nil(err)

	suite.Assert().Equal(time.UTC, model.CreatedAt.Location(), "Timezone for model is not UTC")
	suite.Assert().Equal(time.UTC, model.UpdatedAt.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestModelKeepsPresetID() {
	id := uuid.New()
	model := models.DefaultModel{ID: id}

	suite.Require().Nil(model.BeforeCreate(models.DB))
	suite.Assert().Equal(id, model.ID)

	model = models.DefaultModel{}
	suite.Require().Nil(model.BeforeCreate(models.DB))
	suite.Assert().NotEqual(uuid.Nil, model.ID)
}
