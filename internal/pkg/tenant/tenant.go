// Package tenant implements the demo/production data partition rule. Demo
// accounts follow the email convention demo.<anything>@example.com; every
// other account is production. List responses must never mix partitions.
package tenant

import (
	"strings"

	"github.com/acadex/acadex/internal/app/models"
)

const (
	demoPrefix = "demo."
	demoDomain = "example.com"
)

// Classify derives the tenant of an account from its email address. An email
// is demo iff its local part starts with "demo." and its domain is
// "example.com"; everything else is production.
func Classify(email string) models.Tenant {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return models.TenantProduction
	}
	local, domain := email[:at], email[at+1:]
	if strings.HasPrefix(local, demoPrefix) && strings.EqualFold(domain, demoDomain) {
		return models.TenantDemo
	}
	return models.TenantProduction
}

// IsDemo is a convenience wrapper around Classify.
func IsDemo(email string) bool {
	return Classify(email) == models.TenantDemo
}

// FilterOwned retains only the records whose owning account has the same
// tenant as the requester. ownerOf resolves the owning account's tenant for a
// record; records whose owner cannot be resolved (ok == false) are excluded.
func FilterOwned[T any](records []T, requester models.Tenant, ownerOf func(T) (models.Tenant, bool)) []T {
	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		owner, ok := ownerOf(rec)
		if !ok {
			continue
		}
		if owner == requester {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// FilterByOwnerEmail retains only the records whose owner email classifies to
// the requester's tenant. extractOwnerEmail returns the owning account's
// email; an empty email excludes the record.
func FilterByOwnerEmail[T any](records []T, requesterEmail string, extractOwnerEmail func(T) string) []T {
	requester := Classify(requesterEmail)
	return FilterOwned(records, requester, func(rec T) (models.Tenant, bool) {
		email := extractOwnerEmail(rec)
		if email == "" {
			return "", false
		}
		return Classify(email), true
	})
}
