package neutrino

import (
	"context"
	"strings"
)

// PhoneValidateResponse is the answer of /phone-validate.
type PhoneValidateResponse struct {
	IsValid                  bool      `json:"is_valid"`
	Kind                     PhoneKind `json:"kind"`
	InternationalCallingCode string    `json:"international_calling_code"`
	InternationalNumber      string    `json:"international_number"`
	LocalNumber              string    `json:"local_number"`
	Location                 string    `json:"location"`
	Country                  string    `json:"country"`
	CountryCode              string    `json:"country_code"`
	CountryCode3             string    `json:"country_code3"`
	CurrencyCode             string    `json:"currency_code"`
	IsMobile                 bool      `json:"is_mobile"`
	PrefixNetwork            string    `json:"prefix_network"`
}

func (r *PhoneValidateResponse) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return obj.fields(
		member(&r.IsValid, "valid", "is_valid"),
		member(&r.Kind, "type", "kind"),
		member(&r.InternationalCallingCode, "international_calling_code"),
		member(&r.InternationalNumber, "international_number"),
		member(&r.LocalNumber, "local_number"),
		member(&r.Location, "location"),
		member(&r.Country, "country"),
		member(&r.CountryCode, "country_code"),
		member(&r.CountryCode3, "country_code3"),
		member(&r.CurrencyCode, "currency_code"),
		member(&r.IsMobile, "is_mobile"),
		member(&r.PrefixNetwork, "prefix_network"),
	)
}

// HLRLookupResponse is the answer of /hlr-lookup.
type HLRLookupResponse struct {
	Country                  string    `json:"country"`
	CountryCode              string    `json:"country_code"`
	CountryCode3             string    `json:"country_code3"`
	CurrencyCode             string    `json:"currency_code"`
	CurrentNetwork           string    `json:"current_network"`
	HLRStatus                HLRStatus `json:"hlr_status"`
	IsHLRValid               bool      `json:"is_hlr_valid"`
	IMSI                     string    `json:"imsi"`
	InternationalCallingCode string    `json:"international_calling_code"`
	InternationalNumber      string    `json:"international_number"`
	IsMobile                 bool      `json:"is_mobile"`
	IsPorted                 bool      `json:"is_ported"`
	IsRoaming                bool      `json:"is_roaming"`
	LocalNumber              string    `json:"local_number"`
	Location                 string    `json:"location"`
	MCC                      string    `json:"mcc"`
	MNC                      string    `json:"mnc"`
	MSC                      string    `json:"msc"`
	MSIN                     string    `json:"msin"`
	Kind                     PhoneKind `json:"kind"`
	IsValid                  bool      `json:"is_valid"`
	OriginNetwork            string    `json:"origin_network"`
	PortedNetwork            string    `json:"ported_network"`
	RoamingCountryCode       string    `json:"roaming_country_code"`
}

func (r *HLRLookupResponse) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return obj.fields(
		member(&r.Country, "country"),
		member(&r.CountryCode, "country_code"),
		member(&r.CountryCode3, "country_code3"),
		member(&r.CurrencyCode, "currency_code"),
		member(&r.CurrentNetwork, "current_network"),
		member(&r.HLRStatus, "hlr_status"),
		member(&r.IsHLRValid, "hlr_valid", "is_hlr_valid"),
		member(&r.IMSI, "imsi"),
		member(&r.InternationalCallingCode, "international_calling_code"),
		member(&r.InternationalNumber, "international_number"),
		member(&r.IsMobile, "is_mobile"),
		member(&r.IsPorted, "is_ported"),
		member(&r.IsRoaming, "is_roaming"),
		member(&r.LocalNumber, "local_number"),
		member(&r.Location, "location"),
		member(&r.MCC, "mcc"),
		member(&r.MNC, "mnc"),
		member(&r.MSC, "msc"),
		member(&r.MSIN, "msin"),
		member(&r.Kind, "number_type", "kind"),
		member(&r.IsValid, "number_valid", "is_valid"),
		member(&r.OriginNetwork, "origin_network"),
		member(&r.PortedNetwork, "ported_network"),
		member(&r.RoamingCountryCode, "roaming_country_code"),
	)
}

// NormalizePhoneNumber returns the bare digit string the service expects.
func NormalizePhoneNumber(number string) string {
	return strings.TrimPrefix(strings.TrimSpace(number), "+")
}

// PhoneValidateEndpoint parses, validates and locates a phone number.
func PhoneValidateEndpoint(number string) Endpoint {
	q := snakeCase()
	q.Set("number", NormalizePhoneNumber(number))
	return Endpoint{Path: "/phone-validate", Query: q}
}

// HLRLookupEndpoint asks the mobile network for the live status of a number.
func HLRLookupEndpoint(number string) Endpoint {
	q := snakeCase()
	q.Set("number", NormalizePhoneNumber(number))
	return Endpoint{Path: "/hlr-lookup", Query: q}
}

// PhoneValidate calls /phone-validate.
func (c *Client) PhoneValidate(ctx context.Context, number string) (*PhoneValidateResponse, error) {
	return Lookup[PhoneValidateResponse](ctx, c, PhoneValidateEndpoint(number))
}

// HLRLookup calls /hlr-lookup.
func (c *Client) HLRLookup(ctx context.Context, number string) (*HLRLookupResponse, error) {
	return Lookup[HLRLookupResponse](ctx, c, HLRLookupEndpoint(number))
}
