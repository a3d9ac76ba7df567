package models_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"corpora/models"

	"github.com/stretchr/testify/assert"
)

func TestProfileForSuperuserForcesAdmin(t *testing.T) {
	user := models.User{ID: 1, Superuser: true}

	// mesmo pedindo operator explicitamente, superusuário vira admin
	profile := models.ProfileFor(user, models.ROLE_OPERATOR)
	assert.Equal(t, models.ROLE_ADMIN, profile.Role)

	profile = models.ProfileFor(user, "")
	assert.Equal(t, models.ROLE_ADMIN, profile.Role)
}

func TestProfileForDefaultsToOperator(t *testing.T) {
	user := models.User{ID: 2}
	profile := models.ProfileFor(user, "")
	assert.Equal(t, models.ROLE_OPERATOR, profile.Role)
	assert.Equal(t, user.ID, profile.UserID)
}

func TestProfileForKeepsRequestedRole(t *testing.T) {
	user := models.User{ID: 3}
	assert.Equal(t, models.ROLE_ADMIN, models.ProfileFor(user, models.ROLE_ADMIN).Role)
	assert.Equal(t, models.ROLE_OPERATOR, models.ProfileFor(user, models.ROLE_OPERATOR).Role)
}

func TestValidRole(t *testing.T) {
	assert.True(t, models.ValidRole(models.ROLE_ADMIN))
	assert.True(t, models.ValidRole(models.ROLE_OPERATOR))
	assert.False(t, models.ValidRole("root"))
	assert.False(t, models.ValidRole(""))
}

func TestTextLabelTruncates(t *testing.T) {
	long := strings.Repeat("0123456789", 10)
	text := models.Text{Content: long}
	assert.Equal(t, "Text: "+long[:50]+"...", text.Label())

	short := models.Text{Content: "hi"}
	assert.Equal(t, "Text: hi...", short.Label())
}

func TestTextLabelTruncatesOnRuneBoundary(t *testing.T) {
	// 60 runas multibyte: o corte em 50 runas não pode partir caractere
	text := models.Text{Content: strings.Repeat("ç", 60)}
	label := text.Label()
	assert.True(t, utf8.ValidString(label))
	assert.Equal(t, "Text: "+strings.Repeat("ç", 50)+"...", label)
}
