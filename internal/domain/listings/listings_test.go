package listings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pridenomad-hub/internal/domain/plans"
)

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateTierLimits_Categories(t *testing.T) {
	b := &Business{BusinessName: "Rainbow Café", Categories: []string{"food", "nightlife"}}

	errs := ValidateTierLimits(plans.TierEssentials, b)
	assert.Equal(t, []string{"categories"}, fields(errs))

	assert.Empty(t, ValidateTierLimits(plans.TierElite, b))
}

func TestValidateTierLimits_MultipleViolations(t *testing.T) {
	b := &Business{
		BusinessName:  "Queer Books",
		Categories:    []string{"books", "coffee"},
		SubCategories: []string{"zines"},
		Photos:        []string{"a.jpg", "b.jpg"},
		Description:   strings.Repeat("x", 251),
		VideoURL:      "https://video.example.com/1",
	}

	errs := ValidateTierLimits(plans.TierEssentials, b)
	assert.ElementsMatch(t, []string{"categories", "photos", "description", "videoUrl", "subCategories"}, fields(errs))

	errs = ValidateTierLimits(plans.TierEnhanced, b)
	assert.Equal(t, []string{"videoUrl"}, fields(errs))

	assert.Empty(t, ValidateTierLimits(plans.TierPremium, b))
}

func TestValidateTierLimits_DescriptionCountsRunes(t *testing.T) {
	b := &Business{Description: strings.Repeat("é", 250)}
	assert.Empty(t, ValidateTierLimits(plans.TierEssentials, b))
}

func TestValidateTierLimits_UnlimitedCategories(t *testing.T) {
	cats := make([]string, 40)
	for i := range cats {
		cats[i] = "c"
	}
	assert.Empty(t, ValidateTierLimits(plans.TierElite, &Business{Categories: cats}))
}

func TestValidateFields(t *testing.T) {
	b := &Business{Email: "not-an-email", Website: "notaurl"}

	errs := ValidateFields(b)
	assert.ElementsMatch(t, []string{"businessName", "email", "website"}, fields(errs))

	ok := &Business{BusinessName: "Pride Gym", Email: "hi@pridegym.com", Website: "https://pridegym.com"}
	assert.Empty(t, ValidateFields(ok))
}

func TestValidate_Combines(t *testing.T) {
	b := &Business{Categories: []string{"a", "b"}}
	assert.ElementsMatch(t, []string{"businessName", "categories"}, fields(Validate(plans.TierEssentials, b)))
}

func TestPublicView_TierVisibility(t *testing.T) {
	b := &Business{
		ID:           "b1",
		BusinessName: "Rainbow Café",
		Phone:        "555-0100",
		Website:      "https://rainbow.example",
		Address:      "1 Pride St",
		VideoURL:     "https://video.example/1",
		Photos:       []string{"1.jpg", "2.jpg"},
		Attributes:   map[string]interface{}{"wheelchair": true},
	}

	b.Tier = plans.TierEssentials
	v := PublicView(b)
	assert.Empty(t, v.Phone)
	assert.Empty(t, v.Address)
	assert.Equal(t, []string{"1.jpg"}, v.Photos)
	assert.NotNil(t, v.Categories)
	assert.False(t, v.Featured)

	b.Tier = plans.TierEnhanced
	v = PublicView(b)
	assert.Equal(t, "555-0100", v.Phone)
	assert.Len(t, v.Photos, 2)
	assert.Empty(t, v.VideoURL)

	b.Tier = plans.TierPremium
	v = PublicView(b)
	assert.Equal(t, "1 Pride St", v.Address)
	assert.Equal(t, "https://video.example/1", v.VideoURL)
	assert.Nil(t, v.Attributes)

	b.Tier = plans.TierElite
	v = PublicView(b)
	assert.True(t, v.Featured)
	assert.Equal(t, true, v.Attributes["wheelchair"])
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "rainbow-caf-bar", MakeSlug("Rainbow Café & Bar"))
	assert.Equal(t, "business", MakeSlug("   "))
	assert.Equal(t, "pride-gym-3f2a", BusinessSlug("Pride Gym", "3f2a-11ee"))
}

func TestFilterPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Filter{}.PageSize())
	assert.Equal(t, MaxPageSize, Filter{Limit: 1000}.PageSize())
	assert.Equal(t, 5, Filter{Limit: 5}.PageSize())
}
