package access

import (
	"pridenomad-hub/internal/domain/plans"
)

func CapabilitiesFor(tier plans.Tier, isAdmin bool) []Capability {
	caps := []Capability{CapCreateListing, CapReview}

	limits := plans.LimitsFor(tier)
	if limits.MaxImages != 0 {
		caps = append(caps, CapUploadPhotos)
	}
	if limits.AllowsSubCategories {
		caps = append(caps, CapSubCategories)
	}
	if limits.AllowsVideo {
		caps = append(caps, CapVideo)
	}
	if tier == plans.TierElite {
		caps = append(caps, CapFeatured)
	}

	if isAdmin {
		caps = append(caps, CapModerate, CapManageAdmins, CapManagePayments)
	}
	return caps
}
