package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session", "table-1", vb)
	s.NoError(vb.Build())
}

func (s *ValidationTestSuite) TestBuilderCollectsFields() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("Repository")
	errors.ValidateRequired("SessionID", "  ", vb)
	errors.ValidateEnum("store", "postgres", []string{"memory", "redis", "sqlite"}, vb)
	errors.ValidateRange("dexterity", 40, 1, 30, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	structured, ok := err.(*errors.Error)
	s.Require().True(ok)
	fields := structured.Meta["validation_errors"].(map[string][]string)
	s.Equal([]string{"is required"}, fields["Repository"])
	s.Equal([]string{"is required"}, fields["SessionID"])
	s.Contains(fields["store"][0], "must be one of: memory, redis, sqlite")
	s.Contains(fields["dexterity"][0], "must be between 1 and 30")
}

func (s *ValidationTestSuite) TestValidationErrorMessage() {
	s.NoError(errors.NewValidationBuilder().Build())

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("round", 0, 1, 99, vb)
	s.Contains(vb.Build().Error(), "validation failed: round: must be between 1 and 99")
}

func (s *ValidationTestSuite) TestMessageListsFieldsInOrder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("SessionID")
	vb.InvalidField("SnapshotTTL", "must not be negative")
	vb.RequiredField("Repository")

	s.Contains(vb.Build().Error(),
		"validation failed: Repository: is required; SessionID: is required; SnapshotTTL: is invalid: must not be negative")
}
