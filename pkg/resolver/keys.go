package resolver

// Key identifies a setting. Keys are case-sensitive.
type Key string

// Category groups catalogue keys for documentation. Resolution treats every
// key the same way.
type Category string

// Key categories.
const (
	CategoryUIVisibility      Category = "ui-visibility"
	CategoryAccountManagement Category = "account-management"
	CategoryBranding          Category = "branding"
	CategoryFeatureFlags      Category = "feature-flags"
	CategoryAnalytics         Category = "analytics"
)

// UI visibility keys.
const (
	KeyHideConnectMenubar          Key = "HideConnectMenubar"
	KeyHideSecurityDashboard       Key = "HideSecurityDashboard"
	KeyHideApplicationsSection     Key = "HideApplicationsSection"
	KeyHidePatchManagementSection  Key = "HidePatchManagementSection"
	KeyHideRemoteAssistanceSection Key = "HideRemoteAssistanceSection"
	KeyHideDeviceComplianceSection Key = "HideDeviceComplianceSection"
)

// Account management keys.
const (
	KeyEnableSingleSignOn       Key = "EnableSingleSignOn"
	KeyAutoLogoutTimeInterval   Key = "AutoLogoutTimeInterval"
	KeyRequirePasswordOnLogin   Key = "RequirePasswordOnLogin"
	KeyAllowUserAccountCreation Key = "AllowUserAccountCreation"
)

// Branding keys.
const (
	KeyBrandingName       Key = "BrandingName"
	KeyBrandingLogoURL    Key = "BrandingLogoURL"
	KeyBrandingThemeColor Key = "BrandingThemeColor"
)

// Feature flag keys.
const (
	KeyEnableAdvancedFeatures Key = "EnableAdvancedFeatures"
	KeyEnableBetaFeatures     Key = "EnableBetaFeatures"
	KeyCustomMenuItems        Key = "CustomMenuItems"
	KeyAdditionalCapabilities Key = "AdditionalCapabilities"
)

// Analytics keys.
const (
	KeyDisableAnalytics         Key = "DisableAnalytics"
	KeyDisableAllDataCollection Key = "DisableAllDataCollection"
	KeyDisableSentryLogging     Key = "DisableSentryLogging"
)

// DefaultAutoLogoutSeconds is the builtin AutoLogoutTimeInterval.
const DefaultAutoLogoutSeconds = 3600.0

// KeyInfo describes a catalogue key.
type KeyInfo struct {
	Key      Key      `json:"key"`
	Category Category `json:"category"`
	Kind     Kind     `json:"kind"`
	Default  any      `json:"default"`
}

var catalogue = []KeyInfo{
	{KeyHideConnectMenubar, CategoryUIVisibility, KindBool, false},
	{KeyHideSecurityDashboard, CategoryUIVisibility, KindBool, false},
	{KeyHideApplicationsSection, CategoryUIVisibility, KindBool, false},
	{KeyHidePatchManagementSection, CategoryUIVisibility, KindBool, false},
	{KeyHideRemoteAssistanceSection, CategoryUIVisibility, KindBool, false},
	{KeyHideDeviceComplianceSection, CategoryUIVisibility, KindBool, false},

	{KeyEnableSingleSignOn, CategoryAccountManagement, KindBool, false},
	{KeyAutoLogoutTimeInterval, CategoryAccountManagement, KindNumber, DefaultAutoLogoutSeconds},
	{KeyRequirePasswordOnLogin, CategoryAccountManagement, KindBool, true},
	{KeyAllowUserAccountCreation, CategoryAccountManagement, KindBool, true},

	{KeyBrandingName, CategoryBranding, KindOptionalString, nil},
	{KeyBrandingLogoURL, CategoryBranding, KindOptionalString, nil},
	{KeyBrandingThemeColor, CategoryBranding, KindOptionalString, nil},

	{KeyEnableAdvancedFeatures, CategoryFeatureFlags, KindBool, false},
	{KeyEnableBetaFeatures, CategoryFeatureFlags, KindBool, false},
	{KeyCustomMenuItems, CategoryFeatureFlags, KindRecords, []Record{}},
	{KeyAdditionalCapabilities, CategoryFeatureFlags, KindStrings, []string{}},

	{KeyDisableAnalytics, CategoryAnalytics, KindBool, false},
	{KeyDisableAllDataCollection, CategoryAnalytics, KindBool, false},
	{KeyDisableSentryLogging, CategoryAnalytics, KindBool, false},
}

// Catalogue returns every known key in category order.
func Catalogue() []KeyInfo {
	out := make([]KeyInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupKey returns the catalogue entry for key.
func LookupKey(key Key) (KeyInfo, bool) {
	for _, info := range catalogue {
		if info.Key == key {
			return info, true
		}
	}
	return KeyInfo{}, false
}

// UIHidingKeys returns the six UI visibility keys.
func UIHidingKeys() []Key {
	return keysIn(CategoryUIVisibility)
}

// BrandingKeys returns the three branding keys.
func BrandingKeys() []Key {
	return keysIn(CategoryBranding)
}

func keysIn(c Category) []Key {
	var keys []Key
	for _, info := range catalogue {
		if info.Category == c {
			keys = append(keys, info.Key)
		}
	}
	return keys
}
