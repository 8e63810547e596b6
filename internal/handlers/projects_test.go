package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/apperr"
)

func TestFoldProjectAccess_MergesMissingAndForeign(t *testing.T) {
	// Missing projects and someone else's projects get the same answer so
	// the route does not reveal which ids exist.
	for _, err := range []error{
		apperr.New(apperr.KindNotFound, "project not found"),
		apperr.New(apperr.KindAccessDenied, "project access denied"),
	} {
		folded := foldProjectAccess(err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(folded))
		assert.Equal(t, "Project not found or access denied", apperr.Message(folded))
	}
}

func TestFoldProjectAccess_PassesThroughOtherKinds(t *testing.T) {
	dbErr := apperr.New(apperr.KindDatabase, "Database operation failed")
	assert.Equal(t, dbErr, foldProjectAccess(dbErr))
}

func TestFoldProjectAccess_NilStaysNil(t *testing.T) {
	assert.NoError(t, foldProjectAccess(nil))
}
