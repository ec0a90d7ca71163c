package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acadex/acadex/internal/app/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		email string
		want  models.Tenant
	}{
		{"demo.student@example.com", models.TenantDemo},
		{"demo.@example.com", models.TenantDemo},
		{"demo.teacher@EXAMPLE.COM", models.TenantDemo},
		{"demo.student@example.org", models.TenantProduction},
		{"demonstration@example.com", models.TenantProduction},
		{"student@university.edu", models.TenantProduction},
		{"admin@acadex.edu", models.TenantProduction},
		{"", models.TenantProduction},
		{"not-an-email", models.TenantProduction},
		{"@example.com", models.TenantProduction},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.email), "email %q", tc.email)
	}
}

func TestFilterByOwnerEmailExcludesOtherPartition(t *testing.T) {
	type record struct {
		id    int
		owner string
	}
	records := []record{
		{1, "demo.a@example.com"},
		{2, "b@university.edu"},
		{3, "demo.c@example.com"},
		{4, ""},
	}

	filtered := FilterByOwnerEmail(records, "demo.viewer@example.com", func(r record) string {
		return r.owner
	})

	assert.Len(t, filtered, 2)
	assert.Equal(t, 1, filtered[0].id)
	assert.Equal(t, 3, filtered[1].id)
}
