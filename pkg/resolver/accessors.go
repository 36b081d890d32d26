package resolver

import (
	"net/url"
	"time"
)

// ShouldHideConnectMenubar reports whether the Connect menu bar item is hidden.
func (r *Resolver) ShouldHideConnectMenubar() bool {
	return r.Bool(KeyHideConnectMenubar, false)
}

func (r *Resolver) ShouldHideSecurityDashboard() bool {
	return r.Bool(KeyHideSecurityDashboard, false)
}

func (r *Resolver) ShouldHideApplicationsSection() bool {
	return r.Bool(KeyHideApplicationsSection, false)
}

func (r *Resolver) ShouldHidePatchManagementSection() bool {
	return r.Bool(KeyHidePatchManagementSection, false)
}

func (r *Resolver) ShouldHideRemoteAssistanceSection() bool {
	return r.Bool(KeyHideRemoteAssistanceSection, false)
}

func (r *Resolver) ShouldHideDeviceComplianceSection() bool {
	return r.Bool(KeyHideDeviceComplianceSection, false)
}

func (r *Resolver) IsSingleSignOnEnabled() bool {
	return r.Bool(KeyEnableSingleSignOn, false)
}

// AutoLogoutTimeIntervalSeconds returns the idle logout interval in seconds.
func (r *Resolver) AutoLogoutTimeIntervalSeconds() float64 {
	return r.Number(KeyAutoLogoutTimeInterval, DefaultAutoLogoutSeconds)
}

// AutoLogoutTimeInterval returns the idle logout interval.
func (r *Resolver) AutoLogoutTimeInterval() time.Duration {
	return time.Duration(r.AutoLogoutTimeIntervalSeconds() * float64(time.Second))
}

func (r *Resolver) RequiresPasswordOnLogin() bool {
	return r.Bool(KeyRequirePasswordOnLogin, true)
}

func (r *Resolver) AllowsUserAccountCreation() bool {
	return r.Bool(KeyAllowUserAccountCreation, true)
}

func (r *Resolver) BrandingName() *string {
	return r.OptionalString(KeyBrandingName, nil)
}

// BrandingLogoURL returns the logo URL, or nil when unset or unparseable.
func (r *Resolver) BrandingLogoURL() *url.URL {
	s := r.OptionalString(KeyBrandingLogoURL, nil)
	if s == nil || *s == "" {
		return nil
	}
	u, err := url.Parse(*s)
	if err != nil {
		r.logger.Debug("ignoring unparseable logo URL", "key", KeyBrandingLogoURL, "error", err)
		return nil
	}
	return u
}

func (r *Resolver) BrandingThemeColor() *string {
	return r.OptionalString(KeyBrandingThemeColor, nil)
}

func (r *Resolver) AreAdvancedFeaturesEnabled() bool {
	return r.Bool(KeyEnableAdvancedFeatures, false)
}

func (r *Resolver) AreBetaFeaturesEnabled() bool {
	return r.Bool(KeyEnableBetaFeatures, false)
}

func (r *Resolver) CustomMenuItems() []Record {
	return r.Records(KeyCustomMenuItems, []Record{})
}

func (r *Resolver) AdditionalCapabilities() []string {
	return r.Strings(KeyAdditionalCapabilities, []string{})
}

func (r *Resolver) IsAnalyticsDisabled() bool {
	return r.Bool(KeyDisableAnalytics, false)
}

func (r *Resolver) IsAllDataCollectionDisabled() bool {
	return r.Bool(KeyDisableAllDataCollection, false)
}

func (r *Resolver) IsSentryLoggingDisabled() bool {
	return r.Bool(KeyDisableSentryLogging, false)
}

// AllUIHidingSettings resolves every UI visibility key.
func (r *Resolver) AllUIHidingSettings() map[Key]bool {
	return map[Key]bool{
		KeyHideConnectMenubar:          r.ShouldHideConnectMenubar(),
		KeyHideSecurityDashboard:       r.ShouldHideSecurityDashboard(),
		KeyHideApplicationsSection:     r.ShouldHideApplicationsSection(),
		KeyHidePatchManagementSection:  r.ShouldHidePatchManagementSection(),
		KeyHideRemoteAssistanceSection: r.ShouldHideRemoteAssistanceSection(),
		KeyHideDeviceComplianceSection: r.ShouldHideDeviceComplianceSection(),
	}
}

// AllBrandingSettings resolves every branding key. The logo URL is rendered
// in its string form; unset values are nil.
func (r *Resolver) AllBrandingSettings() map[Key]*string {
	var logo *string
	if u := r.BrandingLogoURL(); u != nil {
		s := u.String()
		logo = &s
	}
	return map[Key]*string{
		KeyBrandingName:       r.BrandingName(),
		KeyBrandingLogoURL:    logo,
		KeyBrandingThemeColor: r.BrandingThemeColor(),
	}
}
