package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobCategoryHelpers(t *testing.T) {
	job := Job{Categories: []Category{{ID: 2, Name: "Science"}, {ID: 4, Name: "Support"}}}

	assert.Equal(t, []uint{2, 4}, job.CategoryIDs())
	assert.Equal(t, []string{"Science", "Support"}, job.CategoryNames())
	assert.True(t, job.HasCategory(4))
	assert.False(t, job.HasCategory(1))

	empty := Job{}
	assert.Empty(t, empty.CategoryIDs())
	assert.NotNil(t, empty.CategoryNames())
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleMember}.IsAdmin())
	assert.False(t, User{}.IsAdmin())
}
