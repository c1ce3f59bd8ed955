package billing

// Tier is a billing plan level gating feature access in the gallery client.
type Tier string

// Billing plan levels.
const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierCreator Tier = "creator"
)

// Monthly plan amounts in the smallest currency unit (USD cents).
const (
	PremiumMonthlyAmount int64 = 999
	CreatorMonthlyAmount int64 = 2999
)

// PriceTierMetadataKey is the Stripe price metadata key carrying the tier.
const PriceTierMetadataKey = "tier"

// ValidTier reports whether t is a known plan level.
func ValidTier(t Tier) bool {
	switch t {
	case TierFree, TierPremium, TierCreator:
		return true
	default:
		return false
	}
}

// TierForAmount maps a recurring price amount to its plan level. It is the
// fallback for price mirrors whose metadata carries no tier key; unknown
// amounts resolve to the free tier.
func TierForAmount(unitAmount int64) Tier {
	switch unitAmount {
	case PremiumMonthlyAmount:
		return TierPremium
	case CreatorMonthlyAmount:
		return TierCreator
	default:
		return TierFree
	}
}

// Entitlements describes the feature limits a tier grants in the VR client.
type Entitlements struct {
	Tier                  Tier  `json:"tier"`
	MaxGalleries          int   `json:"max_galleries"`
	MaxArtworksPerGallery int   `json:"max_artworks_per_gallery"`
	UploadLimitMB         int64 `json:"upload_limit_mb"`
	PrivateGalleries      bool  `json:"private_galleries"`
	CustomEnvironments    bool  `json:"custom_environments"`
	PriorityEvents        bool  `json:"priority_events"`
}

// EntitlementsForTier returns the feature limits granted by a tier.
// Unknown tiers get the free limits.
func EntitlementsForTier(t Tier) Entitlements {
	switch t {
	case TierPremium:
		return Entitlements{
			Tier:                  TierPremium,
			MaxGalleries:          5,
			MaxArtworksPerGallery: 50,
			UploadLimitMB:         1024,
			PrivateGalleries:      true,
		}
	case TierCreator:
		return Entitlements{
			Tier:                  TierCreator,
			MaxGalleries:          25,
			MaxArtworksPerGallery: 250,
			UploadLimitMB:         10240,
			PrivateGalleries:      true,
			CustomEnvironments:    true,
			PriorityEvents:        true,
		}
	default:
		return Entitlements{
			Tier:                  TierFree,
			MaxGalleries:          1,
			MaxArtworksPerGallery: 10,
			UploadLimitMB:         100,
		}
	}
}
